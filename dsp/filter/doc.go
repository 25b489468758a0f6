// Package filter provides second-order IIR sections and their RBJ
// cookbook designs.
//
// Sections run in Direct Form II Transposed and keep their state between
// blocks, so a voice can be filtered note by note or in one call.
package filter
