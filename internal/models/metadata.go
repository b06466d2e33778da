package models

const (
	DefaultPKPrefix  = "ПК"
	DefaultIPKPrefix = "ИПК"
)

// Metadata describes the competence codes printed in every task header.
type Metadata struct {
	PKPrefix      string `json:"pk_prefix" yaml:"pk_prefix" validate:"max=32"`
	PKID          string `json:"pk_id" yaml:"pk_id" validate:"max=64"`
	IPKPrefix     string `json:"ipk_prefix" yaml:"ipk_prefix" validate:"max=32"`
	IPKID         string `json:"ipk_id" yaml:"ipk_id" validate:"max=64"`
	Description   string `json:"description" yaml:"description" validate:"max=1000"`
	DocumentTitle string `json:"document_title" yaml:"document_title" validate:"max=300"`
}

// NewMetadata returns metadata with the default competence prefixes.
func NewMetadata() Metadata {
	return Metadata{PKPrefix: DefaultPKPrefix, IPKPrefix: DefaultIPKPrefix}
}

// Fields exposes metadata under the names used by template expressions.
func (m Metadata) Fields() map[string]string {
	return map[string]string{
		"pk_prefix":      m.PKPrefix,
		"pk_id":          m.PKID,
		"ipk_prefix":     m.IPKPrefix,
		"ipk_id":         m.IPKID,
		"description":    m.Description,
		"document_title": m.DocumentTitle,
	}
}
