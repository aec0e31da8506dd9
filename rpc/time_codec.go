package rpc

import (
	"time"
	"unsafe"

	"github.com/json-iterator/go"
)

const FullDateFormat = time.RFC3339Nano

// TimeCodec encodes time.Time as a string in a fixed layout instead of the
// struct form jsoniter would otherwise produce.
type TimeCodec struct {
	layout string
}

func NewTimeCodec(layout string) TimeCodec {
	return TimeCodec{layout: layout}
}

func (c TimeCodec) IsEmpty(ptr unsafe.Pointer) bool {
	return (*time.Time)(ptr).IsZero()
}

func (c TimeCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	value := *(*time.Time)(ptr)
	stream.WriteString(value.Format(c.layout))
}

func (c TimeCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	value, err := time.Parse(c.layout, iter.ReadString())
	if err != nil {
		iter.ReportError("decode time.Time", err.Error())
		return
	}
	*(*time.Time)(ptr) = value
}
