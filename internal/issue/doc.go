// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error reporting for makemake.
//
// ActionableError carries the operation that failed, the file involved, and
// suggestions for fixing it; the Issue catalog holds longer markdown help
// texts for the known fatal error classes, rendered with glamour.
package issue
