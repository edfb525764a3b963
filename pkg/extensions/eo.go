package extensions

import "github.com/stacgraph/stacgraph/pkg/stac"

// EOName is the registry name of the electro-optical extension.
const EOName = "eo"

// EO exposes electro-optical extension fields: cloud cover and spectral
// band descriptions.
type EO struct {
	obj stac.Object
}

// NewEO wraps obj with the electro-optical extension.
func NewEO(obj stac.Object) *EO { return &EO{obj: obj} }

// Name implements [Extension].
func (*EO) Name() string { return EOName }

// CloudCover returns eo:cloud_cover as a percentage, false when unset.
func (e *EO) CloudCover() (float64, bool) {
	return asFloat(e.obj.Fields()["eo:cloud_cover"])
}

// SetCloudCover stores eo:cloud_cover.
func (e *EO) SetCloudCover(pct float64) {
	e.obj.Fields()["eo:cloud_cover"] = pct
}

// Band describes one spectral band.
type Band struct {
	Name             string
	CommonName       string
	CenterWavelength float64
}

// Bands returns the eo:bands descriptions, nil when unset.
func (e *EO) Bands() []Band {
	raw, ok := e.obj.Fields()["eo:bands"].([]any)
	if !ok {
		return nil
	}
	out := make([]Band, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		b := Band{}
		b.Name, _ = m["name"].(string)
		b.CommonName, _ = m["common_name"].(string)
		b.CenterWavelength, _ = asFloat(m["center_wavelength"])
		out = append(out, b)
	}
	return out
}

// SetBands stores the eo:bands descriptions.
func (e *EO) SetBands(bands []Band) {
	raw := make([]any, len(bands))
	for i, b := range bands {
		entry := map[string]any{"name": b.Name}
		if b.CommonName != "" {
			entry["common_name"] = b.CommonName
		}
		if b.CenterWavelength != 0 {
			entry["center_wavelength"] = b.CenterWavelength
		}
		raw[i] = entry
	}
	e.obj.Fields()["eo:bands"] = raw
}

func init() {
	Register(EOName, func(obj stac.Object) Extension { return NewEO(obj) })
}
