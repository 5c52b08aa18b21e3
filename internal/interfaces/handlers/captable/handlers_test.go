package captable

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	capsvc "minutebook-backend/internal/application/captable"
	"minutebook-backend/internal/domain"
	"minutebook-backend/internal/middleware"
	"minutebook-backend/internal/pkg/response"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type capFixture struct {
	app    *fiber.App
	db     *gorm.DB
	orgID  uuid.UUID
	person uuid.UUID
}

func setupCapApp(t *testing.T) *capFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Address{},
		&domain.Org{},
		&domain.Person{},
		&domain.ShareClass{},
		&domain.ShareIssuance{},
		&domain.ShareTransfer{},
		&domain.AuditLog{},
	))

	org := &domain.Org{Name: "Acme Inc", Jurisdiction: "BC", CreatedBy: uuid.New()}
	require.NoError(t, db.Create(org).Error)
	person := &domain.Person{FirstName: "Ada", LastName: "Lovelace"}
	require.NoError(t, db.Create(person).Error)

	actor := uuid.New()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": actor.String()})
		return c.Next()
	})

	h := &Handlers{Service: &capsvc.Service{DB: db}}
	g := app.Group("/api/v1/orgs", middleware.RequireAuth())
	g.Post("/:org_id/share-classes", h.CreateShareClass)
	g.Get("/:org_id/share-classes", h.ListShareClasses)
	g.Post("/:org_id/issuances", h.IssueShares)
	g.Post("/:org_id/transfers", h.TransferShares)
	g.Get("/:org_id/cap-table", h.GetCapTable)

	return &capFixture{app: app, db: db, orgID: org.OrgID, person: person.PersonID}
}

func (f *capFixture) post(t *testing.T, path string, payload interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orgs/"+f.orgID.String()+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *capFixture) createClass(t *testing.T) uuid.UUID {
	t.Helper()
	resp := f.post(t, "/share-classes", map[string]interface{}{
		"name": "Common", "short_code": "CMN", "voting": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body response.SuccessBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body.Data.(map[string]interface{})
	id, err := uuid.Parse(data["share_class_id"].(string))
	require.NoError(t, err)
	return id
}

func TestShareClassEndpoint_DuplicateConflict(t *testing.T) {
	f := setupCapApp(t)
	f.createClass(t)

	resp := f.post(t, "/share-classes", map[string]interface{}{
		"name": "Common Again", "short_code": "cmn",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestIssueEndpoint_FullFlow(t *testing.T) {
	f := setupCapApp(t)
	classID := f.createClass(t)

	resp := f.post(t, "/issuances", map[string]interface{}{
		"shareholder_type": "person",
		"shareholder_id":   f.person.String(),
		"share_class_id":   classID.String(),
		"quantity":         1000,
		"cert_number":      "C-001",
		"issue_price":      "1.25",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orgs/"+f.orgID.String()+"/cap-table", nil)
	tableResp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, tableResp.StatusCode)

	var body response.SuccessBody
	require.NoError(t, json.NewDecoder(tableResp.Body).Decode(&body))
	data := body.Data.(map[string]interface{})
	assert.EqualValues(t, 1000, data["total"])
}

func TestIssueEndpoint_SelfShareholdingUnprocessable(t *testing.T) {
	f := setupCapApp(t)
	classID := f.createClass(t)

	resp := f.post(t, "/issuances", map[string]interface{}{
		"shareholder_type":      "entity",
		"entity_shareholder_id": f.orgID.String(),
		"share_class_id":        classID.String(),
		"quantity":              100,
		"cert_number":           "C-001",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestIssueEndpoint_ExclusivityBadRequest(t *testing.T) {
	f := setupCapApp(t)
	classID := f.createClass(t)

	resp := f.post(t, "/issuances", map[string]interface{}{
		"shareholder_type":      "person",
		"shareholder_id":        f.person.String(),
		"entity_shareholder_id": uuid.NewString(),
		"share_class_id":        classID.String(),
		"quantity":              100,
		"cert_number":           "C-001",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransferEndpoint_InsufficientConflict(t *testing.T) {
	f := setupCapApp(t)
	classID := f.createClass(t)

	resp := f.post(t, "/issuances", map[string]interface{}{
		"shareholder_type": "person",
		"shareholder_id":   f.person.String(),
		"share_class_id":   classID.String(),
		"quantity":         500,
		"cert_number":      "C-001",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	other := &domain.Person{FirstName: "Grace", LastName: "Hopper"}
	require.NoError(t, f.db.Create(other).Error)

	resp = f.post(t, "/transfers", map[string]interface{}{
		"from_person_id": f.person.String(),
		"to_person_id":   other.PersonID.String(),
		"share_class_id": classID.String(),
		"quantity":       600,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body response.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, capsvc.ErrInsufficientShares.Error(), body.Error.Message)
}

func TestTransferEndpoint_MissingToPerson(t *testing.T) {
	f := setupCapApp(t)
	classID := f.createClass(t)

	resp := f.post(t, "/transfers", map[string]interface{}{
		"share_class_id": classID.String(),
		"quantity":       100,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListShareClassesEndpoint(t *testing.T) {
	f := setupCapApp(t)
	f.createClass(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orgs/"+f.orgID.String()+"/share-classes", nil)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body response.SuccessBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	classes := body.Data.([]interface{})
	assert.Len(t, classes, 1)
}
