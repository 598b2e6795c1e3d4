package media

import (
	"context"
	"encoding/base64"
)

// DataURL embebe el archivo completo como "data:<mime>;base64,<...>".
type DataURL struct{}

func (DataURL) Encode(ctx context.Context, f File, maxBytes int64) (string, error) {
	ct, err := check(f, maxBytes)
	if err != nil {
		return "", err
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(f.Data), nil
}
