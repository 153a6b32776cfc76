package domain

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleClient   Role = "client"
	RolePetshop  Role = "petshop"
	RoleSupplier Role = "supplier"
	RoleCompany  Role = "company"
	RoleAdmin    Role = "admin"
)

func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case RoleClient, RolePetshop, RoleSupplier, RoleCompany, RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("unsupported role %q", raw)
	}
}

func (r Role) Label() string {
	switch r {
	case RoleClient:
		return "Client"
	case RolePetshop:
		return "Petshop"
	case RoleSupplier:
		return "Supplier"
	case RoleCompany:
		return "Company"
	case RoleAdmin:
		return "Admin"
	case "":
		return "Unknown"
	default:
		return string(r)
	}
}

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
}
