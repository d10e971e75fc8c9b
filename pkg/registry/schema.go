// pkg/registry/schema.go
package registry

// RecordRegistry is the versioned catalog of record schemas the intake
// service validates payloads against before they leave the process.
type RecordRegistry struct {
	Version     string         `json:"version"`
	LastUpdated string         `json:"lastUpdated"`
	Records     []RecordSchema `json:"records"`
}

// RecordSchema pairs a record name with its JSON schema document.
type RecordSchema struct {
	Name        string                 `json:"name"`
	DisplayName string                 `json:"displayName"`
	Description string                 `json:"description"`
	Schema      map[string]interface{} `json:"schema"`
}
