package enums

// AuditAction names a recorded back-office mutation.
type AuditAction string

const (
	AuditActionCreate        AuditAction = "create"
	AuditActionUpdate        AuditAction = "update"
	AuditActionDelete        AuditAction = "delete"
	AuditActionTogglePublish AuditAction = "toggle_publish"
	AuditActionReorder       AuditAction = "reorder"
	AuditActionStatutChange  AuditAction = "statut_change"
	AuditActionLogin         AuditAction = "login"
)

// String implements fmt.Stringer.
func (a AuditAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known action.
func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete,
		AuditActionTogglePublish, AuditActionReorder,
		AuditActionStatutChange, AuditActionLogin:
		return true
	}
	return false
}
