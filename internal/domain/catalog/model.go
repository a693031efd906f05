package catalog

import (
	"fmt"
	"strings"
	"time"

	userdomain "chai-app-go/internal/domain/user"
)

// ChaiType is the two letter code stored for a variety.
type ChaiType string

const (
	TypeMasala ChaiType = "ML"
	TypeGinger ChaiType = "GR"
	TypeKiwi   ChaiType = "KL"
	TypePlain  ChaiType = "PL"
	TypeElachi ChaiType = "EL"
)

var typeLabels = map[ChaiType]string{
	TypeMasala: "MASALA",
	TypeGinger: "GINGER",
	TypeKiwi:   "KIWI",
	TypePlain:  "PLAIN",
	TypeElachi: "ELACHI",
}

// Types returns the allowed codes in display order.
func Types() []ChaiType {
	return []ChaiType{TypeMasala, TypeGinger, TypeKiwi, TypePlain, TypeElachi}
}

func (t ChaiType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t ChaiType) Label() string {
	return typeLabels[t]
}

// ParseType accepts a code ("ML") or a label ("masala"), case-insensitively.
func ParseType(value string) (ChaiType, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if candidate := ChaiType(value); candidate.Valid() {
		return candidate, nil
	}
	for code, label := range typeLabels {
		if label == value {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: unknown chai type %q", ErrInvalidInput, value)
}

type ChaiVariety struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Image       string    `gorm:"size:100;not null;default:''"`
	Price       int       `gorm:"not null;default:0"`
	DateAdded   time.Time `gorm:"not null"`
	Type        ChaiType  `gorm:"type:varchar(2);not null;check:chk_chai_varieties_type,type IN ('ML','GR','KL','PL','EL')"`
	Description string    `gorm:"type:text;not null;default:''"`

	Reviews     []ChaiReview     `gorm:"foreignKey:ChaiID;constraint:OnDelete:CASCADE"`
	Certificate *ChaiCertificate `gorm:"foreignKey:ChaiID;constraint:OnDelete:CASCADE"`
	Stores      []Store          `gorm:"many2many:store_chai_varieties;constraint:OnDelete:CASCADE"`
}

func (v ChaiVariety) String() string {
	return v.Name
}

type ChaiReview struct {
	ID        uint      `gorm:"primaryKey"`
	ChaiID    uint      `gorm:"not null;index:idx_chai_reviews_chai_date,priority:1"`
	UserID    uint      `gorm:"not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text;not null"`
	DateAdded time.Time `gorm:"not null;index:idx_chai_reviews_chai_date,priority:2"`

	User *userdomain.User `gorm:"constraint:OnDelete:CASCADE"`
}

// Describe renders the review the way the catalog lists it. The user must be loaded.
func (r ChaiReview) Describe(chaiName string) string {
	username := ""
	if r.User != nil {
		username = r.User.Username
	}
	return fmt.Sprintf("%s reviewed for %s", username, chaiName)
}

type Store struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:100;not null"`
	Location string `gorm:"size:150;not null"`

	ChaiVarieties []ChaiVariety `gorm:"many2many:store_chai_varieties;constraint:OnDelete:CASCADE"`
}

func (s Store) String() string {
	return s.Name
}

type ChaiCertificate struct {
	ID                uint      `gorm:"primaryKey"`
	ChaiID            uint      `gorm:"not null;uniqueIndex"`
	CertificateNumber string    `gorm:"size:100;not null"`
	IssuedDate        time.Time `gorm:"not null"`
	ValidUntil        time.Time `gorm:"not null"`
}

func (c ChaiCertificate) Describe(chaiName string) string {
	return "Certificate for " + chaiName
}

// VarietyDetail is a variety with everything hanging off it.
type VarietyDetail struct {
	Variety     ChaiVariety
	Reviews     []ChaiReview
	Stores      []Store
	Certificate *ChaiCertificate
}

type VarietyInput struct {
	Name        string
	Image       string
	Price       int
	Type        string
	Description string
	DateAdded   *time.Time
}

type ReviewInput struct {
	ChaiID    uint
	UserID    uint
	Rating    int
	Comment   string
	DateAdded *time.Time
}

type CertificateInput struct {
	ChaiID            uint
	CertificateNumber string
	IssuedDate        *time.Time
	ValidUntil        time.Time
}

type StoreInput struct {
	Name       string
	Location   string
	VarietyIDs []uint
}
