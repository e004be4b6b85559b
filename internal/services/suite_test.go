package services

import (
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erfnk/kanban-board-api/internal/config"
	"github.com/erfnk/kanban-board-api/internal/models"
)

// serviceSuite is the shared base for service tests: an in-memory SQLite
// database per test plus fixture helpers.
type serviceSuite struct {
	suite.Suite
	db       *gorm.DB
	features config.Features
	access   *BoardAccessService
}

// SetupTest runs before each test
func (s *serviceSuite) SetupTest() {
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

	s.features = config.Features{SharedBoardsEnabled: true}
	s.access = NewBoardAccessService(s.db, s.features)
}

// TearDownTest runs after each test
func (s *serviceSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// Fixture helpers

func (s *serviceSuite) createUser(name string) *models.User {
	user := &models.User{
		Name:  name,
		Email: name + "@example.com",
	}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *serviceSuite) createOrganization(name, slug string) *models.Organization {
	org := &models.Organization{
		Name: name,
		Slug: slug,
	}
	s.Require().NoError(s.db.Create(org).Error)
	return org
}

func (s *serviceSuite) addMember(orgID, userID uint64, role models.OrganizationRole) {
	member := &models.OrganizationMember{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
	}
	s.Require().NoError(s.db.Create(member).Error)
}

func (s *serviceSuite) createBoard(orgID, creatorID uint64, visibility models.BoardVisibility, slug string) *models.Board {
	board := &models.Board{
		Title:          "Board " + slug,
		Slug:           slug,
		Visibility:     visibility,
		OrganizationID: orgID,
		CreatedByID:    creatorID,
	}
	s.Require().NoError(s.db.Create(board).Error)
	return board
}

func (s *serviceSuite) createColumn(boardID uint64, title string, position int) *models.Column {
	column := &models.Column{
		BoardID:  boardID,
		Title:    title,
		Position: position,
	}
	s.Require().NoError(s.db.Create(column).Error)
	return column
}

func (s *serviceSuite) createTask(board *models.Board, columnID uint64, title string, position int, createdByID uint64) *models.Task {
	task := &models.Task{
		BoardID:     board.ID,
		ColumnID:    columnID,
		Title:       title,
		Priority:    models.PriorityMedium,
		Position:    position,
		CreatedByID: createdByID,
	}
	s.Require().NoError(s.db.Create(task).Error)
	return task
}

func (s *serviceSuite) columnPositions(boardID uint64) map[uint64]int {
	var columns []models.Column
	s.Require().NoError(s.db.Where("board_id = ?", boardID).Find(&columns).Error)

	result := make(map[uint64]int, len(columns))
	for _, c := range columns {
		result[c.ID] = c.Position
	}
	return result
}

func (s *serviceSuite) taskPositions(columnID uint64) map[uint64]int {
	var tasks []models.Task
	s.Require().NoError(s.db.Where("column_id = ?", columnID).Find(&tasks).Error)

	result := make(map[uint64]int, len(tasks))
	for _, t := range tasks {
		result[t.ID] = t.Position
	}
	return result
}

func (s *serviceSuite) countTasksOnBoard(boardID uint64) int64 {
	var count int64
	s.Require().NoError(s.db.Model(&models.Task{}).Where("board_id = ?", boardID).Count(&count).Error)
	return count
}
