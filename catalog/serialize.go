package catalog

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/resgraph/resquery-go/internal/msgpack"
)

// snapshot is the serialized form of a static catalog: MessagePack encoded,
// ZStandard compressed. Used for warm starts and transport between services.
type snapshot struct {
	Connection string                     `msgpack:"connection"`
	Types      []snapshotType             `msgpack:"types"`
	Predicates map[string][]PredicateInfo `msgpack:"predicates"`
}

type snapshotType struct {
	FullName   string                 `msgpack:"full_name"`
	Parent     string                 `msgpack:"parent"`
	Properties map[string]ColumnRef   `msgpack:"properties"`
	Specials   map[string][]ColumnRef `msgpack:"specials"`
}

// Snapshot serializes the catalog for transport or caching.
func (c *StaticCatalog) Snapshot() ([]byte, error) {
	snap := snapshot{
		Connection: c.conn,
		Predicates: c.predicates,
	}
	for _, rt := range c.types {
		snap.Types = append(snap.Types, snapshotType{
			FullName:   rt.fullName,
			Parent:     rt.parent,
			Properties: rt.properties,
			Specials:   rt.specials,
		})
	}

	encoded, err := msgpack.Encode(snap)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode snapshot: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("catalog: create zstd encoder: %w", err)
	}
	defer encoder.Close()

	return encoder.EncodeAll(encoded, make([]byte, 0, len(encoded)/2)), nil
}

// LoadSnapshot reconstructs a static catalog from Snapshot output.
func LoadSnapshot(data []byte) (*StaticCatalog, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: create zstd decoder: %w", err)
	}
	defer decoder.Close()

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: decompress snapshot: %w", err)
	}

	var snap snapshot
	if err := msgpack.Decode(decompressed, &snap); err != nil {
		return nil, fmt.Errorf("catalog: decode snapshot: %w", err)
	}

	c := NewStaticCatalog(snap.Connection)
	for _, st := range snap.Types {
		rt := &resourceType{
			fullName:   st.FullName,
			parent:     st.Parent,
			properties: st.Properties,
			specials:   st.Specials,
		}
		if rt.properties == nil {
			rt.properties = make(map[string]ColumnRef)
		}
		if rt.specials == nil {
			rt.specials = make(map[string][]ColumnRef)
		}
		c.types[st.FullName] = rt
	}
	if snap.Predicates != nil {
		c.predicates = snap.Predicates
	}
	return c, nil
}
