package ast

// Firm role values carried by a profile.
const (
	FirmRolePrincipal               = "principal"
	FirmRoleAppointedRepresentative = "appointed_representative"
)

// Attribute codes resolvable through FirmProfile.AttributeValue. The rules
// engine falls back to these when a question code has no entry in the
// answer map.
const (
	AttrPermissions = "permissions"
	AttrClientTypes = "client_types"
	AttrChannels    = "channels"
	AttrFirmRole    = "firm_role"
	AttrFirmSize    = "firm_size"
	AttrOutsourcing = "outsourcing"
)

// FirmProfile is the fixed-shape record of a firm's regulatory attributes.
// It supplies default values when a wizard answer is absent.
type FirmProfile struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`

	// Permissions are the firm's regulatory permissions.
	Permissions []string `yaml:"permissions" json:"permissions"`

	// ClientTypes are the client categories served (e.g. retail, professional).
	ClientTypes []string `yaml:"client_types" json:"client_types"`

	// Channels are the distribution channels used.
	Channels []string `yaml:"channels" json:"channels"`

	// FirmRole is principal or appointed_representative.
	FirmRole string `yaml:"firm_role" json:"firm_role"`

	// FirmSize is a banded size descriptor (e.g. "small", "medium", "large").
	FirmSize string `yaml:"firm_size" json:"firm_size"`

	// Outsourcing lists outsourced functions.
	Outsourcing []string `yaml:"outsourcing" json:"outsourcing"`

	// Branding applied to generated documents.
	PrimaryColor   string `yaml:"primary_color,omitempty" json:"primary_color,omitempty"`
	SecondaryColor string `yaml:"secondary_color,omitempty" json:"secondary_color,omitempty"`
}

// AttributeValue resolves a firm attribute by code, returning absent for
// codes outside the fixed attribute set. Used by the rules engine when an
// answer is missing.
func (p *FirmProfile) AttributeValue(code string) Value {
	if p == nil {
		return Absent()
	}
	switch code {
	case AttrPermissions:
		return Strings(p.Permissions...)
	case AttrClientTypes:
		return Strings(p.ClientTypes...)
	case AttrChannels:
		return Strings(p.Channels...)
	case AttrFirmRole:
		if p.FirmRole == "" {
			return Absent()
		}
		return String(p.FirmRole)
	case AttrFirmSize:
		if p.FirmSize == "" {
			return Absent()
		}
		return String(p.FirmSize)
	case AttrOutsourcing:
		return Strings(p.Outsourcing...)
	default:
		return Absent()
	}
}
