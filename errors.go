// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Pop and Dequeue: the collection is empty (nothing to remove)
// For Push and Enqueue: every arena slot is live or awaiting reclamation
//
// ErrWouldBlock is a control flow signal, not a failure. An empty Pop is
// the normal "not found" outcome. A full arena on Push usually means
// removers keep overlapping, so popped nodes sit on the deferred list;
// waiting lets the overlap end and a quiescent departure free them.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := s.Push(&buf)
//	    if err == nil {
//	        break
//	    }
//	    if lfc.IsWouldBlock(err) {
//	        backoff.Wait()  // Let in-flight pops drain
//	        continue
//	    }
//	    return err
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
