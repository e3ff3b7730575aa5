package wire

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Error is the body of every non-2xx API response.
type Error struct {
	Code    int
	Message string
	// Issues maps field names to validation messages, when relevant.
	Issues map[string]string
}

// EncodeError writes err.
func EncodeError(e *jx.Encoder, err Error) {
	e.ObjStart()
	intField(e, "code", err.Code)
	strField(e, "message", err.Message)
	if len(err.Issues) > 0 {
		e.FieldStart("issues")
		e.ObjStart()
		for k, v := range err.Issues {
			strField(e, k, v)
		}
		e.ObjEnd()
	}
	e.ObjEnd()
}

// DecodeError reads an error body. Unknown keys are skipped so clients keep
// working against newer servers.
func DecodeError(d *jx.Decoder) (Error, error) {
	var out Error
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "code":
			return into(d, key, &out.Code, readInt)
		case "message":
			return into(d, key, &out.Message, readStr)
		case "issues":
			out.Issues = make(map[string]string)
			return d.Obj(func(d *jx.Decoder, key string) error {
				v, err := readStr(d)
				if err != nil {
					return err
				}
				out.Issues[key] = v
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return Error{}, errors.Wrap(err, "decode error")
	}
	return out, nil
}
