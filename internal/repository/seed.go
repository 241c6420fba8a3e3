package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/sojus-client/internal/domain"
)

//go:embed seed/demo.yaml
var demoSeed []byte

// Seed is the initial data set of the development backend.
type Seed struct {
	Circumscriptions []SeedCircumscription `yaml:"circunscripciones"`
	Courts           []SeedCourt           `yaml:"juzgados"`
	Users            []SeedUser            `yaml:"usuarios"`
	Hardware         []SeedHardware        `yaml:"hardware"`
	Software         []SeedSoftware        `yaml:"software"`
	Contracts        []SeedContract        `yaml:"contratos"`
	Tickets          []SeedTicket          `yaml:"tickets"`
}

type SeedCircumscription struct {
	Name string `yaml:"nombre"`
	Code string `yaml:"codigo"`
}

type SeedCourt struct {
	Name            string `yaml:"nombre"`
	Jurisdiction    string `yaml:"fuero"`
	Secretariat     string `yaml:"secretaria"`
	Circumscription string `yaml:"circunscripcion"`
	Inactive        bool   `yaml:"inactivo"`
}

type SeedUser struct {
	Username string      `yaml:"username"`
	Password string      `yaml:"password"`
	FullName string      `yaml:"fullName"`
	Email    string      `yaml:"email"`
	Role     domain.Role `yaml:"role"`
	Court    string      `yaml:"juzgado"`
	Inactive bool        `yaml:"inactivo"`
}

type SeedHardware struct {
	InventoryNumber string `yaml:"inventarioPatrimonial"`
	SerialNumber    string `yaml:"numeroSerie"`
	Class           string `yaml:"clase"`
	Type            string `yaml:"tipo"`
	Brand           string `yaml:"marca"`
	Model           string `yaml:"modelo"`
	State           string `yaml:"estado"`
	Court           string `yaml:"juzgado"`
	Location        string `yaml:"ubicacionFisica"`
	Notes           string `yaml:"observaciones"`
}

type SeedSoftware struct {
	Name          string `yaml:"nombre"`
	Version       string `yaml:"version"`
	Vendor        string `yaml:"fabricante"`
	LicenseType   string `yaml:"tipoLicencia"`
	LicenseNumber string `yaml:"numeroLicencia"`
	LicenseCount  int    `yaml:"cantidadLicencias"`
	ExpiresOn     string `yaml:"fechaVencimiento"`
	State         string `yaml:"estado"`
}

type SeedContract struct {
	Name          string `yaml:"nombre"`
	Vendor        string `yaml:"proveedor"`
	Number        string `yaml:"numeroContrato"`
	StartsOn      string `yaml:"fechaInicio"`
	EndsOn        string `yaml:"fechaFin"`
	HardwareCover string `yaml:"coberturaHw"`
	SoftwareCover string `yaml:"coberturaSw"`
	SLA           string `yaml:"slaDescripcion"`
	Inactive      bool   `yaml:"inactivo"`
}

type SeedTicket struct {
	Subject     string                `yaml:"asunto"`
	Description string                `yaml:"descripcion"`
	Priority    domain.TicketPriority `yaml:"prioridad"`
	Status      domain.TicketStatus   `yaml:"status"`
	Channel     domain.TicketChannel  `yaml:"canal"`
	Court       string                `yaml:"juzgado"`
	Requester   string                `yaml:"solicitante"`
	Technician  string                `yaml:"tecnico"`
	Hardware    string                `yaml:"hardware"`
	Log         string                `yaml:"bitacora"`
	ClosedAt    string                `yaml:"closedAt"`
}

// LoadSeed reads the seed at path, or the built-in demo data when path is
// empty.
func LoadSeed(path string) (*Seed, error) {
	data := demoSeed
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed: %w", err)
		}
		data = raw
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &seed, nil
}

// PasswordHasher turns a clear password into its stored hash.
type PasswordHasher func(password string) (string, error)

// Populate inserts seed into repos. Cross references are by name: courts by
// name, circumscriptions by code, users by username and hardware by
// inventory number.
func Populate(ctx context.Context, repos *Repositories, seed *Seed, hash PasswordHasher) error {
	circByCode := make(map[string]int64)
	for _, c := range seed.Circumscriptions {
		created, err := repos.Locations.CreateCircumscription(ctx, domain.Circumscription{Name: c.Name, Code: c.Code})
		if err != nil {
			return fmt.Errorf("seed circumscription %q: %w", c.Code, err)
		}
		circByCode[c.Code] = created.ID
	}

	courtByName := make(map[string]int64)
	for _, c := range seed.Courts {
		record := CourtRecord{
			Court: domain.Court{
				Name:         c.Name,
				Jurisdiction: c.Jurisdiction,
				Secretariat:  c.Secretariat,
				Active:       !c.Inactive,
			},
		}
		if c.Circumscription != "" {
			id, ok := circByCode[c.Circumscription]
			if !ok {
				return fmt.Errorf("seed court %q: unknown circumscription %q", c.Name, c.Circumscription)
			}
			record.CircumscriptionID = id
		}
		created, err := repos.Locations.CreateCourt(ctx, record)
		if err != nil {
			return fmt.Errorf("seed court %q: %w", c.Name, err)
		}
		courtByName[c.Name] = created.Court.ID
	}
	courtID := func(name string) (int64, error) {
		if name == "" {
			return 0, nil
		}
		id, ok := courtByName[name]
		if !ok {
			return 0, fmt.Errorf("unknown court %q", name)
		}
		return id, nil
	}

	userByName := make(map[string]UserRecord)
	for _, u := range seed.Users {
		if !u.Role.Valid() {
			return fmt.Errorf("seed user %q: invalid role %q", u.Username, u.Role)
		}
		hashed, err := hash(u.Password)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
		court, err := courtID(u.Court)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
		created, err := repos.Users.Create(ctx, UserRecord{
			User: domain.User{
				Username: u.Username,
				FullName: u.FullName,
				Email:    u.Email,
				Role:     u.Role,
			},
			PasswordHash: hashed,
			Active:       !u.Inactive,
			CourtID:      court,
		})
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
		userByName[strings.ToLower(u.Username)] = created
	}

	hardwareByNumber := make(map[string]HardwareRecord)
	for _, h := range seed.Hardware {
		court, err := courtID(h.Court)
		if err != nil {
			return fmt.Errorf("seed hardware %q: %w", h.InventoryNumber, err)
		}
		created, err := repos.Hardware.Create(ctx, HardwareRecord{
			Hardware: domain.Hardware{
				InventoryNumber: h.InventoryNumber,
				SerialNumber:    h.SerialNumber,
				Class:           h.Class,
				Type:            h.Type,
				Brand:           h.Brand,
				Model:           h.Model,
				State:           h.State,
				Location:        h.Location,
				Notes:           h.Notes,
			},
			CourtID: court,
		})
		if err != nil {
			return fmt.Errorf("seed hardware %q: %w", h.InventoryNumber, err)
		}
		hardwareByNumber[h.InventoryNumber] = created
	}

	for _, s := range seed.Software {
		expires, err := optionalDate(s.ExpiresOn)
		if err != nil {
			return fmt.Errorf("seed software %q: %w", s.Name, err)
		}
		if _, err := repos.Software.Create(ctx, domain.Software{
			Name:          s.Name,
			Version:       s.Version,
			Vendor:        s.Vendor,
			LicenseType:   s.LicenseType,
			LicenseNumber: s.LicenseNumber,
			LicenseCount:  s.LicenseCount,
			ExpiresOn:     expires,
			State:         s.State,
		}); err != nil {
			return fmt.Errorf("seed software %q: %w", s.Name, err)
		}
	}

	for _, c := range seed.Contracts {
		starts, err := optionalDate(c.StartsOn)
		if err != nil {
			return fmt.Errorf("seed contract %q: %w", c.Name, err)
		}
		ends, err := optionalDate(c.EndsOn)
		if err != nil {
			return fmt.Errorf("seed contract %q: %w", c.Name, err)
		}
		if _, err := repos.Contracts.Create(ctx, domain.Contract{
			Name:          c.Name,
			Vendor:        c.Vendor,
			Number:        c.Number,
			StartsOn:      starts,
			EndsOn:        ends,
			HardwareCover: c.HardwareCover,
			SoftwareCover: c.SoftwareCover,
			SLA:           c.SLA,
			Active:        !c.Inactive,
		}); err != nil {
			return fmt.Errorf("seed contract %q: %w", c.Name, err)
		}
	}

	for _, t := range seed.Tickets {
		if err := seedTicket(ctx, repos, t, courtByName, userByName, hardwareByNumber); err != nil {
			return fmt.Errorf("seed ticket %q: %w", t.Subject, err)
		}
	}
	return nil
}

func seedTicket(
	ctx context.Context,
	repos *Repositories,
	t SeedTicket,
	courts map[string]int64,
	users map[string]UserRecord,
	hardware map[string]HardwareRecord,
) error {
	status := t.Status
	if status == "" {
		status = domain.TicketStatusRequested
	}
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	priority := t.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	channel := t.Channel
	if channel == "" {
		channel = domain.ChannelWeb
	}

	record := TicketRecord{
		Ticket: domain.Ticket{
			Subject:     t.Subject,
			Description: t.Description,
			Status:      status,
			Priority:    priority,
			Channel:     channel,
			Log:         t.Log,
		},
	}

	if t.Court != "" {
		id, ok := courts[t.Court]
		if !ok {
			return fmt.Errorf("unknown court %q", t.Court)
		}
		record.CourtID = id
		record.Ticket.Court = t.Court
	}
	if t.Requester != "" {
		u, ok := users[strings.ToLower(t.Requester)]
		if !ok {
			return fmt.Errorf("unknown requester %q", t.Requester)
		}
		record.RequesterID = u.User.ID
		record.Ticket.Requester = u.User.FullName
	}
	if t.Technician != "" {
		u, ok := users[strings.ToLower(t.Technician)]
		if !ok {
			return fmt.Errorf("unknown technician %q", t.Technician)
		}
		if u.User.Role != domain.RoleTechnician {
			return fmt.Errorf("user %q is not a technician", t.Technician)
		}
		record.TechnicianID = u.User.ID
		record.Ticket.Assignee = u.User.FullName
	}
	if t.Hardware != "" {
		h, ok := hardware[t.Hardware]
		if !ok {
			return fmt.Errorf("unknown hardware %q", t.Hardware)
		}
		record.HardwareID = h.Hardware.ID
		record.Ticket.Hardware = h.Hardware.InventoryNumber
	}
	if t.ClosedAt != "" {
		closed, err := domain.ParseTimestamp(t.ClosedAt)
		if err != nil {
			return err
		}
		record.Ticket.ClosedAt = closed
	}

	_, err := repos.Tickets.Create(ctx, record)
	return err
}

func optionalDate(s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(s)
}
