package user

import (
	"time"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleMerchant, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Phone        *string   `json:"phone,omitempty"`
	Country      *string   `json:"country,omitempty"`
	City         *string   `json:"city,omitempty"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateParams struct {
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Phone        *string
	Country      *string
	City         *string
	Role         Role
}

// UpdateParams carries a partial patch; nil fields are left untouched.
// ID and CreatedAt are not patchable.
type UpdateParams struct {
	Email    *string
	FullName *string
	Phone    *string
	Country  *string
	City     *string
	Role     *Role
	IsActive *bool
}

func (p UpdateParams) Empty() bool {
	return p.Email == nil &&
		p.FullName == nil &&
		p.Phone == nil &&
		p.Country == nil &&
		p.City == nil &&
		p.Role == nil &&
		p.IsActive == nil
}

// newUser applies creation defaults identically for every backing store.
func newUser(id string, now time.Time, p CreateParams) User {
	role := p.Role
	if role == "" {
		role = RoleCustomer
	}
	return User{
		ID:           id,
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		FullName:     p.FullName,
		Phone:        p.Phone,
		Country:      p.Country,
		City:         p.City,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
	}
}

func (u *User) apply(p UpdateParams) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.Country != nil {
		u.Country = p.Country
	}
	if p.City != nil {
		u.City = p.City
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}
