// Package kernel holds the primitives shared by every aggregate of the order
// intake domain:
//   - UUID: identifier value object used for audit entries and events
//   - decimal helpers: half-up rounding for money (2 dp) and weight (3 dp),
//     zero clamping and optional value unwrapping
//
// All money and weight arithmetic goes through github.com/shopspring/decimal;
// binary floating point never touches an amount.
package kernel
