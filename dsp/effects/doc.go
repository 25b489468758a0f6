// Package effects provides post-mix effect kernels.
//
//   - Echo: feed-forward multi-tap echo, a cheap stand-in for room reverb.
//   - Smear: dry/wet blend with a centered box average, a diffuse tail.
//
// Echo runs sample by sample; Smear needs the whole buffer.
package effects
