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


package vectorize

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// ModelMUS serializes Model to the MUS binary format. The persisted model is
// an opaque blob: nothing outside this package depends on its layout. The
// term index is not serialized; it is rebuilt from Terms on load.
var ModelMUS = modelMUS{}

type modelMUS struct{}

func (s modelMUS) Marshal(v *Model, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v.Terms), bs)
	for _, term := range v.Terms {
		n += ord.String.Marshal(term, bs[n:])
	}
	for _, w := range v.IDF {
		n += raw.Float64.Marshal(w, bs[n:])
	}
	n += varint.Int.Marshal(v.DocCount, bs[n:])
	n += varint.Uint64.Marshal(v.Generation, bs[n:])
	return
}

func (s modelMUS) Unmarshal(bs []byte) (v *Model, n int, err error) {
	var count int
	if count, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	if count < 0 {
		err = fmt.Errorf("negative vocabulary size %d", count)
		return
	}

	v = &Model{
		Terms: make([]string, count),
		IDF:   make([]float64, count),
	}
	var n1 int
	for i := range v.Terms {
		if v.Terms[i], n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	for i := range v.IDF {
		if v.IDF[i], n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if v.DocCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Generation, n1, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.buildIndex()
	return
}

func (s modelMUS) Size(v *Model) (size int) {
	size = varint.Int.Size(len(v.Terms))
	for _, term := range v.Terms {
		size += ord.String.Size(term)
	}
	for _, w := range v.IDF {
		size += raw.Float64.Size(w)
	}
	size += varint.Int.Size(v.DocCount)
	size += varint.Uint64.Size(v.Generation)
	return
}

// MarshalModel serializes a model to an opaque binary blob.
func MarshalModel(model *Model) []byte {
	buf := make([]byte, ModelMUS.Size(model))
	ModelMUS.Marshal(model, buf)
	return buf
}

// UnmarshalModel deserializes a model from a blob produced by MarshalModel.
func UnmarshalModel(data []byte) (*Model, error) {
	model, _, err := ModelMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return model, nil
}
