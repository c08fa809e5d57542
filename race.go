// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package lfc

// RaceEnabled is true when the race detector is active.
// Tests use it to skip concurrent stress runs over generic element types:
// slot payloads are plain fields ordered by atomix acquire/release on the
// head and root words, which the detector cannot observe.
const RaceEnabled = true
