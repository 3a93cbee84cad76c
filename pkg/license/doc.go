// Package license maps detected source licenses to ports license tags.
//
// A [Detector] inspects an extracted source tree and reports the license it
// recognises as a [Detection]. The [Normalizer] looks the detected identifier
// up in a closed [Table]: a mapped detection becomes a confirmed LICENSE
// entry, anything else falls back to the license string declared upstream,
// which is rendered as an advisory the port maintainer has to verify.
//
// [FileDetector] is the built-in detector. It scans the usual license file
// names, honours SPDX-License-Identifier tags and otherwise matches license
// text against known phrases.
package license
