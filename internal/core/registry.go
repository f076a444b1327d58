package core

import (
	"sort"

	pep440 "github.com/aquasecurity/go-pep440-version"

	"alert-packet/internal/types"
)

// SchemaRegistry maps version strings and content identifiers to resolved
// schemas.
//
// Registration is a single-writer operation: populate the registry during
// startup, then treat it as read-only. Concurrent reads are safe once
// population has finished; concurrent Register calls are not.
type SchemaRegistry struct {
	versionToID map[string]string
	idToSchema  map[string]types.ResolvedSchema
}

func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{
		versionToID: map[string]string{},
		idToSchema:  map[string]types.ResolvedSchema{},
	}
}

// Register stores the schema under the given version and under its
// content identifier, returning the identifier. Re-registering a version
// repoints it at the new schema; the previous identifier's entry stays
// retrievable by id.
func (r *SchemaRegistry) Register(schema types.ResolvedSchema, version string) (string, error) {
	id, err := SchemaID(schema)
	if err != nil {
		return "", err
	}
	r.versionToID[version] = id
	r.idToSchema[id] = schema
	return id, nil
}

// ByVersion returns the schema currently registered under version.
func (r *SchemaRegistry) ByVersion(version string) (types.ResolvedSchema, error) {
	id, ok := r.versionToID[version]
	if !ok {
		return types.ResolvedSchema{}, errUnknownVersion(version)
	}
	return r.idToSchema[id], nil
}

// ByID returns the schema registered under the given content identifier.
func (r *SchemaRegistry) ByID(id string) (types.ResolvedSchema, error) {
	schema, ok := r.idToSchema[id]
	if !ok {
		return types.ResolvedSchema{}, errUnknownID(id)
	}
	return schema, nil
}

// IDByVersion returns the content identifier a version currently points
// at.
func (r *SchemaRegistry) IDByVersion(version string) (string, error) {
	id, ok := r.versionToID[version]
	if !ok {
		return "", errUnknownVersion(version)
	}
	return id, nil
}

// KnownVersions returns every registered version, sorted.
func (r *SchemaRegistry) KnownVersions() []string {
	versions := make([]string, 0, len(r.versionToID))
	for version := range r.versionToID {
		versions = append(versions, version)
	}
	sort.Strings(versions)
	return versions
}

// KnownIDs returns every registered content identifier, sorted.
func (r *SchemaRegistry) KnownIDs() []string {
	ids := make([]string, 0, len(r.idToSchema))
	for id := range r.idToSchema {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LatestVersion returns the highest registered version under MAJOR.MINOR
// ordering ("10.0" sorts above "9.1", which plain string sorting gets
// wrong). Versions that fail to parse lose to those that parse.
func (r *SchemaRegistry) LatestVersion() (string, error) {
	if len(r.versionToID) == 0 {
		return "", errUnknownVersion("(registry is empty)")
	}
	var best string
	var bestParsed pep440.Version
	var haveParsed bool
	for _, version := range r.KnownVersions() {
		parsed, err := pep440.Parse(version)
		if err != nil {
			if best == "" {
				best = version
			}
			continue
		}
		if !haveParsed || parsed.Compare(bestParsed) > 0 {
			best = version
			bestParsed = parsed
			haveParsed = true
		}
	}
	return best, nil
}
