package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erfnk/kanban-board-api/internal/config"
	"github.com/erfnk/kanban-board-api/internal/models"
	"github.com/erfnk/kanban-board-api/internal/services"
)

// handlerSuite is the shared base for handler tests: an in-memory SQLite
// database with the full service stack wired on top.
type handlerSuite struct {
	suite.Suite
	db       *gorm.DB
	access   *services.BoardAccessService
	boards   *services.BoardService
	columns  *services.ColumnService
	tasks    *services.TaskService
	comments *services.CommentService
}

// SetupTest runs before each test
func (s *handlerSuite) SetupTest() {
	var err error

	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	err = s.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Board{},
		&models.Column{},
		&models.Task{},
		&models.BoardAccess{},
		&models.BoardFavorite{},
		&models.TaskComment{},
	)
	s.Require().NoError(err)

	features := config.Features{SharedBoardsEnabled: true}
	s.access = services.NewBoardAccessService(s.db, features)
	s.boards = services.NewBoardService(s.db, s.access, features)
	s.columns = services.NewColumnService(s.db, s.access)
	s.tasks = services.NewTaskService(s.db, s.access)
	s.comments = services.NewCommentService(s.db, s.access)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (s *handlerSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// createAuthContext builds a gin test context with an authenticated session
// user, mirroring what the auth middleware would set.
func (s *handlerSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// Fixture helpers

func (s *handlerSuite) createUser(name string) *models.User {
	user := &models.User{
		Name:  name,
		Email: name + "@example.com",
	}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *handlerSuite) createOrganization(name, slug string) *models.Organization {
	org := &models.Organization{
		Name: name,
		Slug: slug,
	}
	s.Require().NoError(s.db.Create(org).Error)
	return org
}

func (s *handlerSuite) addMember(orgID, userID uint64, role models.OrganizationRole) {
	member := &models.OrganizationMember{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
	}
	s.Require().NoError(s.db.Create(member).Error)
}

func (s *handlerSuite) createBoardWithColumns(orgID, creatorID uint64) (*models.Board, []models.Column) {
	board := &models.Board{
		Title:          "Test Board",
		Slug:           "test-board",
		Visibility:     models.VisibilityPrivate,
		OrganizationID: orgID,
		CreatedByID:    creatorID,
	}
	s.Require().NoError(s.db.Create(board).Error)

	columns := []models.Column{
		{BoardID: board.ID, Title: "To Do", Position: 0},
		{BoardID: board.ID, Title: "Done", Position: 1},
	}
	s.Require().NoError(s.db.Create(&columns).Error)
	return board, columns
}
