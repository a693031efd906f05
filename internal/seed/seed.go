// Package seed loads catalog fixtures from YAML.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	catalogdomain "chai-app-go/internal/domain/catalog"
	userdomain "chai-app-go/internal/domain/user"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

type File struct {
	Users     []User    `yaml:"users"`
	Varieties []Variety `yaml:"varieties"`
	Stores    []Store   `yaml:"stores"`
}

type User struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
}

type Variety struct {
	Name        string       `yaml:"name"`
	Type        string       `yaml:"type"`
	Price       int          `yaml:"price"`
	Image       string       `yaml:"image"`
	Description string       `yaml:"description"`
	DateAdded   string       `yaml:"date_added"`
	Certificate *Certificate `yaml:"certificate"`
	Reviews     []Review     `yaml:"reviews"`
}

type Certificate struct {
	Number     string `yaml:"number"`
	IssuedDate string `yaml:"issued_date"`
	ValidUntil string `yaml:"valid_until"`
}

type Review struct {
	User      string `yaml:"user"`
	Rating    int    `yaml:"rating"`
	Comment   string `yaml:"comment"`
	DateAdded string `yaml:"date_added"`
}

type Store struct {
	Name      string   `yaml:"name"`
	Location  string   `yaml:"location"`
	Varieties []string `yaml:"varieties"`
}

type Catalog interface {
	ListVarieties(ctx context.Context) ([]catalogdomain.ChaiVariety, error)
	CreateVariety(ctx context.Context, input catalogdomain.VarietyInput) (*catalogdomain.ChaiVariety, error)
	AddReview(ctx context.Context, input catalogdomain.ReviewInput) (*catalogdomain.ChaiReview, error)
	IssueCertificate(ctx context.Context, input catalogdomain.CertificateInput) (*catalogdomain.ChaiCertificate, error)
	ListStores(ctx context.Context) ([]catalogdomain.Store, error)
	CreateStore(ctx context.Context, input catalogdomain.StoreInput) (*catalogdomain.Store, error)
	AddVarietyToStore(ctx context.Context, storeID, chaiID uint) (*catalogdomain.Store, error)
}

type Users interface {
	GetUserByUsername(ctx context.Context, username string) (*userdomain.User, error)
	CreateUser(ctx context.Context, input userdomain.CreateUserInput) (*userdomain.User, error)
}

// Result counts what Apply created.
type Result struct {
	Users        int
	Varieties    int
	Reviews      int
	Certificates int
	Stores       int
}

func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("seed: parse: %w", err)
	}
	return &file, nil
}

// Apply creates whatever in the file is missing. Users, varieties and stores
// are matched by name, so running the same file twice adds nothing. Reviews
// and certificates are only added to varieties created by this run.
func Apply(ctx context.Context, file *File, catalog Catalog, users Users) (Result, error) {
	var result Result

	userIDs := make(map[string]uint, len(file.Users))
	for _, item := range file.Users {
		username := strings.TrimSpace(item.Username)
		existing, err := users.GetUserByUsername(ctx, username)
		switch {
		case err == nil:
			userIDs[username] = existing.ID
			continue
		case !errors.Is(err, userdomain.ErrUserNotFound):
			return result, fmt.Errorf("seed: lookup user %s: %w", username, err)
		}

		created, err := users.CreateUser(ctx, userdomain.CreateUserInput{Username: username, Email: item.Email})
		if err != nil {
			return result, fmt.Errorf("seed: create user %s: %w", username, err)
		}
		userIDs[username] = created.ID
		result.Users++
	}

	varietyIDs, err := existingVarieties(ctx, catalog)
	if err != nil {
		return result, err
	}

	for _, item := range file.Varieties {
		name := strings.TrimSpace(item.Name)
		if _, ok := varietyIDs[name]; ok {
			continue
		}

		dateAdded, err := parseDate(item.DateAdded)
		if err != nil {
			return result, fmt.Errorf("seed: variety %s date_added: %w", name, err)
		}
		variety, err := catalog.CreateVariety(ctx, catalogdomain.VarietyInput{
			Name:        name,
			Image:       item.Image,
			Price:       item.Price,
			Type:        item.Type,
			Description: item.Description,
			DateAdded:   dateAdded,
		})
		if err != nil {
			return result, fmt.Errorf("seed: create variety %s: %w", name, err)
		}
		varietyIDs[name] = variety.ID
		result.Varieties++

		for _, review := range item.Reviews {
			userID, ok := userIDs[strings.TrimSpace(review.User)]
			if !ok {
				return result, fmt.Errorf("seed: review on %s: unknown user %q", name, review.User)
			}
			reviewDate, err := parseDate(review.DateAdded)
			if err != nil {
				return result, fmt.Errorf("seed: review on %s date_added: %w", name, err)
			}
			if _, err := catalog.AddReview(ctx, catalogdomain.ReviewInput{
				ChaiID:    variety.ID,
				UserID:    userID,
				Rating:    review.Rating,
				Comment:   review.Comment,
				DateAdded: reviewDate,
			}); err != nil {
				return result, fmt.Errorf("seed: review on %s: %w", name, err)
			}
			result.Reviews++
		}

		if cert := item.Certificate; cert != nil {
			validUntil, err := parseDate(cert.ValidUntil)
			if err != nil || validUntil == nil {
				return result, fmt.Errorf("seed: certificate for %s: valid_until must be YYYY-MM-DD", name)
			}
			issued, err := parseDate(cert.IssuedDate)
			if err != nil {
				return result, fmt.Errorf("seed: certificate for %s issued_date: %w", name, err)
			}
			if _, err := catalog.IssueCertificate(ctx, catalogdomain.CertificateInput{
				ChaiID:            variety.ID,
				CertificateNumber: cert.Number,
				IssuedDate:        issued,
				ValidUntil:        *validUntil,
			}); err != nil {
				return result, fmt.Errorf("seed: certificate for %s: %w", name, err)
			}
			result.Certificates++
		}
	}

	stores, err := catalog.ListStores(ctx)
	if err != nil {
		return result, fmt.Errorf("seed: list stores: %w", err)
	}
	storeIDs := make(map[string]uint, len(stores))
	for _, store := range stores {
		storeIDs[store.Name] = store.ID
	}

	for _, item := range file.Stores {
		name := strings.TrimSpace(item.Name)
		storeID, ok := storeIDs[name]
		if !ok {
			store, err := catalog.CreateStore(ctx, catalogdomain.StoreInput{Name: name, Location: item.Location})
			if err != nil {
				return result, fmt.Errorf("seed: create store %s: %w", name, err)
			}
			storeID = store.ID
			storeIDs[name] = storeID
			result.Stores++
		}

		for _, varietyName := range item.Varieties {
			chaiID, ok := varietyIDs[strings.TrimSpace(varietyName)]
			if !ok {
				return result, fmt.Errorf("seed: store %s: unknown variety %q", name, varietyName)
			}
			if _, err := catalog.AddVarietyToStore(ctx, storeID, chaiID); err != nil {
				return result, fmt.Errorf("seed: store %s: %w", name, err)
			}
		}
	}

	return result, nil
}

func existingVarieties(ctx context.Context, catalog Catalog) (map[string]uint, error) {
	varieties, err := catalog.ListVarieties(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed: list varieties: %w", err)
	}
	ids := make(map[string]uint, len(varieties))
	for _, variety := range varieties {
		ids[variety.Name] = variety.ID
	}
	return ids, nil
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
