// Copyright 2025 Poiesic Systems
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


package storage

import (
	"fmt"

	"github.com/poiesic/bidmatch/core"
)

// MarshalTenderRecord serializes a TenderRecord to bytes.
func MarshalTenderRecord(record *core.TenderRecord) []byte {
	buf := make([]byte, core.TenderRecordMUS.Size(*record))
	core.TenderRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalTenderRecord deserializes a TenderRecord from bytes.
func UnmarshalTenderRecord(data []byte) (*core.TenderRecord, error) {
	record, _, err := core.TenderRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
