package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
)

// Principal is the authenticated actor behind a request. It is passed
// explicitly into every engine operation; nothing reads it from ambient
// request state.
type Principal struct {
	ID   int32 `json:"id"`
	Role Role  `json:"role"`
}

func (p Principal) IsEmployee() bool {
	return p.Role == RoleEmployee
}
