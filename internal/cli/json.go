package cli

import (
	"io"

	"github.com/bytedance/sonic"
)

// WriteJSON serializes v as indented JSON with a trailing newline, for
// --format json output.
func WriteJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
