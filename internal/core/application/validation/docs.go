// Package validation implements the Validation Engine of the order intake
// pipeline.
//
// All checks run on every call and their findings are collected into an
// Outcome, so a single response can report every problem at once. Lookups
// are read only: pincode serviceability goes through the injected
// PincodeDirectory (normally the TTL cache), pickup locations are always read
// fresh and the duplicate check is advisory.
package validation
