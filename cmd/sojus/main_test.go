package main

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/sojus-client/internal/api/http"
	"github.com/spec-kit/sojus-client/internal/backend"
	"github.com/spec-kit/sojus-client/internal/config"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// setup serves the development backend on a loopback port and points the
// CLI at it with an encrypted file store in a temp dir.
func setup(t *testing.T) {
	t.Helper()
	repos, err := backend.SeededRepositories(context.Background(), "", bcrypt.MinCost, nil)
	require.NoError(t, err)

	app, err := httptransport.NewServer(httptransport.ServerDependencies{
		App:   config.AppConfig{Name: "sojus-mock", Version: "test"},
		Mock:  config.MockConfig{JWTSecret: "cli-secret", AccessTokenTTLMinutes: 30},
		Repos: repos,
	})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	t.Setenv("SOJUS_API_BASE_URL", "http://"+ln.Addr().String())
	t.Setenv("SOJUS_STORE_BACKEND", config.StoreFile)
	t.Setenv("SOJUS_STORE_PATH", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("SOJUS_STORE_PASSPHRASE", "cli-test")
	t.Setenv("LOG_LEVEL", "error")
}

func sojus(args ...string) result {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestTechnicianSession(t *testing.T) {
	setup(t)

	res := sojus("whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Inicie sesión para continuar")

	res = sojus("login", "-u", "tecnico", "-p", "wrong")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Credenciales inválidas")

	res = sojus("login", "-u", "tecnico", "-p", "tec123")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Bienvenido")
	assert.Contains(t, res.stdout, "Técnico")

	// Each invocation is a new process; the session comes from the store.
	res = sojus("whoami")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "tecnico@poderjudicial.gov.ar")

	res = sojus("views")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Mis Tickets")
	assert.NotContains(t, res.stdout, "Contratos")

	res = sojus("dashboard")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "No tiene permisos para esta acción")

	res = sojus("tickets", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Impresora no funciona en Secretaría")

	res = sojus("tickets", "status", "1", "en_curso")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "En Curso")
	assert.Contains(t, res.stdout, "tecnico: Estado cambiado a EN_CURSO")
	assert.Contains(t, res.stderr, "Estado actualizado a EN_CURSO")

	res = sojus("tickets", "actions", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "CERRADO")

	res = sojus("tickets", "status", "1", "SOLICITADO")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "No se pudo actualizar el estado")

	res = sojus("logout")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Sesión cerrada")

	res = sojus("tickets", "list")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Inicie sesión para continuar")
}

func TestOperatorCreatesTicket(t *testing.T) {
	setup(t)
	require.Equal(t, 0, sojus("login", "-u", "operador", "-p", "oper123").code)

	res := sojus("tickets", "create", "-s", "Sin sonido en la sala de audiencias")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "prioridad ALTA")
	assert.Contains(t, res.stderr, "Ticket creado correctamente")

	res = sojus("tickets", "create", "-s", "  ")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "El asunto es obligatorio")

	res = sojus("tickets", "status", "1", "ASIGNADO")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "No tiene permisos para esta acción")

	res = sojus("contracts", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Mantenimiento Impresoras")

	res = sojus("users")
	assert.Equal(t, 1, res.code)
}

func TestAdministratorCommands(t *testing.T) {
	setup(t)
	require.Equal(t, 0, sojus("login", "-u", "admin", "-p", "admin123").code)

	res := sojus("--metrics", "dashboard")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Tickets abiertos")
	assert.Contains(t, res.stderr, "requests:")
	assert.Contains(t, res.stderr, "/api/dashboard/stats")

	res = sojus("users", "--role", "tecnico")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "tecnico")
	assert.NotContains(t, res.stdout, "operador")

	res = sojus("inventory", "hardware", "add", "--inventory-number", "PJ-HW-9001", "--type", "Notebook")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "PJ-HW-9001")

	res = sojus("inventory", "hardware")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "PJ-HW-9001")

	res = sojus("contracts", "create", "--name", "Soporte", "--vendor", "ACME", "--ends", "31/12/2026")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Fecha inválida en --ends")

	res = sojus("audit")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "CREATE")

	res = sojus("courts")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "JUZGADO")
}
