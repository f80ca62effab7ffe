// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"strings"
	"unicode/utf8"

	"github.com/bitmark-inc/verifierd/fault"
)

// status record sizes
const (
	MaxMessageLength = 255
	userStatusHeader = 2
	UserStatusSize   = userStatusHeader + MaxMessageLength
)

// UserStatus - the latest status text posted to a user
type UserStatus struct {
	StatusCode uint8  `json:"statusCode"`
	Message    string `json:"message"`
}

// Size - capacity allocated for a status slot
func (u *UserStatus) Size() int {
	return UserStatusSize
}

// PackInto - write the status to buffer, zeroing any unused tail
func (u *UserStatus) PackInto(buffer []byte) error {
	n := len(u.Message)
	if n > MaxMessageLength {
		return fault.ErrMessageTooLong
	}
	if !utf8.ValidString(u.Message) {
		return fault.ErrInvalidUTF8
	}
	if len(buffer) < userStatusHeader+n {
		return fault.ErrBufferTooSmall
	}
	buffer[0] = u.StatusCode
	buffer[1] = uint8(n)
	copy(buffer[userStatusHeader:], u.Message)
	zero(buffer[userStatusHeader+n:])
	return nil
}

// Unpack - decode a status, bytes beyond the message are ignored
func (u *UserStatus) Unpack(buffer []byte) error {
	if len(buffer) < userStatusHeader {
		return fault.ErrCorruptRecord
	}
	n := int(buffer[1])
	if len(buffer) < userStatusHeader+n {
		return fault.ErrCorruptRecord
	}
	message := buffer[userStatusHeader : userStatusHeader+n]
	if !utf8.Valid(message) {
		return fault.ErrCorruptRecord
	}
	u.StatusCode = buffer[0]
	u.Message = string(message)
	return nil
}

// BoundMessage - truncate to MaxMessageLength bytes on a character boundary
func BoundMessage(s string) string {
	s = strings.ToValidUTF8(s, "?")
	if len(s) <= MaxMessageLength {
		return s
	}
	n := MaxMessageLength
	for n > 0 && !utf8.RuneStart(s[n]) {
		n -= 1
	}
	return s[:n]
}
