// Package auth signs staff into the shop terminal. Credentials come
// from a static roster; there is no user management workflow.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type Employee struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	PinHash string `json:"pinHash"`
	Role    string `json:"role"`
}

type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
}

// StaticRoster is the fixed employee list. Lookup misses are reported
// the same as bad PINs so the roster contents stay unguessable.
type StaticRoster struct {
	byID map[string]Employee
}

func NewStaticRoster(employees []Employee) *StaticRoster {
	m := make(map[string]Employee, len(employees))
	for _, e := range employees {
		m[e.ID] = e
	}
	return &StaticRoster{byID: m}
}

// ParseRoster reads the roster from its JSON form (the STAFF_ROSTER
// environment value).
func ParseRoster(raw string) (*StaticRoster, error) {
	if raw == "" {
		return NewStaticRoster(nil), nil
	}
	var employees []Employee
	if err := json.Unmarshal([]byte(raw), &employees); err != nil {
		return nil, err
	}
	return NewStaticRoster(employees), nil
}

func (r *StaticRoster) FindByID(_ context.Context, id string) (*Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return &e, nil
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
	Employee    struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"employee"`
}

type LoginUsecase struct {
	finder    EmployeeFinder
	jwtSecret []byte
	expMin    int
}

func NewLoginUsecase(finder EmployeeFinder, jwtSecret string, expiresMinutes int) *LoginUsecase {
	if expiresMinutes <= 0 {
		expiresMinutes = 60
	}
	return &LoginUsecase{
		finder:    finder,
		jwtSecret: []byte(jwtSecret),
		expMin:    expiresMinutes,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, username, pin string) (*LoginResult, error) {
	emp, err := u.finder.FindByID(ctx, username)
	if err != nil {
		// Hide whether the username exists
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PinHash), []byte(pin)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	exp := now.Add(time.Duration(u.expMin) * time.Minute)

	claims := jwt.MapClaims{
		"sub":  emp.ID,
		"name": emp.Name,
		"role": emp.Role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(u.jwtSecret)
	if err != nil {
		return nil, err
	}

	res := &LoginResult{
		AccessToken: signed,
		ExpiresIn:   u.expMin * 60,
	}
	res.Employee.ID = emp.ID
	res.Employee.Name = emp.Name
	res.Employee.Role = emp.Role
	return res, nil
}
