package extensions

import "github.com/stacgraph/stacgraph/pkg/stac"

// ProjName is the registry name of the projection extension.
const ProjName = "proj"

// Proj exposes the projection extension fields: the EPSG code, projected
// bounding box, and projected geometry of an object.
type Proj struct {
	obj stac.Object
}

// NewProj wraps obj with the projection extension.
func NewProj(obj stac.Object) *Proj { return &Proj{obj: obj} }

// Name implements [Extension].
func (*Proj) Name() string { return ProjName }

// EPSG returns the proj:epsg code, false when unset or null.
func (p *Proj) EPSG() (int, bool) {
	f, ok := asFloat(p.obj.Fields()["proj:epsg"])
	if !ok {
		return 0, false
	}
	return int(f), true
}

// SetEPSG stores the proj:epsg code.
func (p *Proj) SetEPSG(code int) {
	p.obj.Fields()["proj:epsg"] = code
}

// ClearEPSG removes the proj:epsg field.
func (p *Proj) ClearEPSG() {
	delete(p.obj.Fields(), "proj:epsg")
}

// BBox returns the proj:bbox coordinates, nil when unset.
func (p *Proj) BBox() []float64 {
	raw, ok := p.obj.Fields()["proj:bbox"].([]any)
	if !ok {
		if direct, ok := p.obj.Fields()["proj:bbox"].([]float64); ok {
			return direct
		}
		return nil
	}
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		f, ok := asFloat(v)
		if !ok {
			return nil
		}
		out = append(out, f)
	}
	return out
}

// SetBBox stores the proj:bbox coordinates.
func (p *Proj) SetBBox(bbox []float64) {
	p.obj.Fields()["proj:bbox"] = bbox
}

// Geometry returns the raw proj:geometry GeoJSON object, nil when unset.
func (p *Proj) Geometry() map[string]any {
	g, _ := p.obj.Fields()["proj:geometry"].(map[string]any)
	return g
}

// SetGeometry stores the proj:geometry GeoJSON object.
func (p *Proj) SetGeometry(g map[string]any) {
	p.obj.Fields()["proj:geometry"] = g
}

func init() {
	Register(ProjName, func(obj stac.Object) Extension { return NewProj(obj) })
}
