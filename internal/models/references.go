package models

// ReferencesModel carries objects related to the entries of a response, so
// clients can resolve a report's route label without a second request.
type ReferencesModel struct {
	Routes []RouteEntry `json:"routes"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Routes: []RouteEntry{},
	}
}

// AddRoute appends r unless a route with the same id is already referenced.
func (m *ReferencesModel) AddRoute(r RouteEntry) {
	for _, existing := range m.Routes {
		if existing.ID == r.ID {
			return
		}
	}
	m.Routes = append(m.Routes, r)
}
