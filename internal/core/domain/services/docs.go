// Package services provides the pure domain services of the order intake
// pipeline. They hold no state and perform no I/O.
//
// The package includes:
//   - OrderCalculator: money and weight derivation with fixed-point decimals
//   - TextSanitizer: storage preparation of free text with truncation warnings
//   - NormalizePhone / IsValidMobile: Indian mobile number handling shared by
//     validation and sanitization
package services
