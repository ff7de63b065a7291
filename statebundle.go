package fastadapter

import "gopkg.in/yaml.v3"

// Bundle is a flat, string-keyed container for the identifier lists the
// extensions persist across process recreation. Keys are namespaced by an
// optional prefix so multiple adapter instances can share one bundle.
//
// The bundle serializes to YAML so applications can stash it wherever their
// own state lives.
type Bundle struct {
	IDLists map[string][]int64 `yaml:"id_lists"`
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{IDLists: map[string][]int64{}}
}

// PutIDs stores an identifier list under the given key, replacing any
// previous list. Storing an empty list removes the key.
func (b *Bundle) PutIDs(key string, ids []int64) {
	if b.IDLists == nil {
		b.IDLists = map[string][]int64{}
	}
	if len(ids) == 0 {
		delete(b.IDLists, key)
		return
	}
	b.IDLists[key] = append([]int64(nil), ids...)
}

// IDs returns the identifier list stored under the given key, or nil.
func (b *Bundle) IDs(key string) []int64 {
	return b.IDLists[key]
}

// Marshal serializes the bundle to YAML.
func (b *Bundle) Marshal() ([]byte, error) {
	return yaml.Marshal(b)
}

// UnmarshalBundle deserializes a bundle previously produced by
// [Bundle.Marshal].
func UnmarshalBundle(data []byte) (*Bundle, error) {
	b := NewBundle()
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, err
	}
	if b.IDLists == nil {
		b.IDLists = map[string][]int64{}
	}
	return b, nil
}
