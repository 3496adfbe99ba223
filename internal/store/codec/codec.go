// Package codec turns session records into the bytes the durable drivers
// write, sealing them when a Sealer is configured.
package codec

import (
	"fmt"

	"github.com/eagl/console/pkg/cryptox"
	"github.com/eagl/console/pkg/session"
)

// Codec encodes and decodes stored records. The zero value stores plain JSON.
type Codec struct {
	Sealer *cryptox.Sealer
}

// Encode returns the stored form of r.
func (c Codec) Encode(r session.Record) ([]byte, error) {
	data, err := r.Marshal()
	if err != nil {
		return nil, err
	}
	if c.Sealer == nil {
		return data, nil
	}
	return c.Sealer.Seal(data)
}

// Decode parses the stored form. Anything that can't be opened or parsed is
// reported as session.ErrInvalidRecord.
func (c Codec) Decode(data []byte) (session.Record, error) {
	if c.Sealer != nil {
		opened, err := c.Sealer.Open(data)
		if err != nil {
			return session.Record{}, fmt.Errorf("%w: %v", session.ErrInvalidRecord, err)
		}
		data = opened
	}
	return session.UnmarshalRecord(data)
}
