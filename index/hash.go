// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package index

import (
	"encoding/hex"
	"strconv"
	"strings"

	sha256 "github.com/minio/sha256-simd"
)

// Domain separation prefixes keep a record digest from ever equalling a
// subtree digest.
const (
	leafPrefix = "\x00"
	nodePrefix = "\x01"
)

// encodeFields length-prefixes every field ("3:abc0:") so that no two
// distinct field lists share an encoding.
func encodeFields(fields ...string) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
	}
	return b.String()
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// LeafDigest is the digest of a single record: id and its encoded value.
func LeafDigest(id int, value string) string {
	return digest(leafPrefix + encodeFields(strconv.Itoa(id), value))
}

// NodeDigest folds a record digest with the digests of its children. An
// absent child is passed as "". A node without children keeps its record
// digest.
func NodeDigest(left, data, right string) string {
	if left == "" && right == "" {
		return data
	}
	return digest(nodePrefix + encodeFields(left, data, right))
}
