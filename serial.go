// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package susp

import (
	"strconv"

	"code.hybscloud.com/atomix"
)

// Serial identifies an invoker. Serials are handed out in creation order,
// starting at 1, and are reported by the tasks built on each invoker.
type Serial uint32

// String formats s as "#n", the form used in executor logs.
func (s Serial) String() string { return "#" + strconv.FormatUint(uint64(s), 10) }

var serials atomix.Uint32

func nextSerial() Serial { return Serial(serials.Add(1)) }
