package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/erfnk/kanban-board-api/internal/models"
)

type TaskServiceTestSuite struct {
	serviceSuite
	tasks *TaskService
}

func (s *TaskServiceTestSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.tasks = NewTaskService(s.db, s.access)
}

// board with two columns owned by the returned user
func (s *TaskServiceTestSuite) seedBoard() (*models.User, *models.Board, *models.Column, *models.Column) {
	user := s.createUser("alice")
	org := s.createOrganization("Acme", "acme")
	s.addMember(org.ID, user.ID, models.RoleMember)
	board := s.createBoard(org.ID, user.ID, models.VisibilityPrivate, "board")
	todo := s.createColumn(board.ID, "To Do", 0)
	done := s.createColumn(board.ID, "Done", 1)
	return user, board, todo, done
}

func (s *TaskServiceTestSuite) TestCreateTask_AppendsAtEnd() {
	user, board, todo, _ := s.seedBoard()
	s.createTask(board, todo.ID, "existing", 0, user.ID)
	s.createTask(board, todo.ID, "sparse", 5, user.ID)

	task, err := s.tasks.CreateTask(CreateTaskInput{
		BoardID:     board.ID,
		ColumnID:    todo.ID,
		Title:       "new task",
		CreatedByID: user.ID,
	})

	s.NoError(err)
	s.Equal(6, task.Position)
	s.Equal(models.PriorityMedium, task.Priority)
	s.Equal(board.ID, task.BoardID)
}

func (s *TaskServiceTestSuite) TestCreateTask_EmptyColumnStartsAtZero() {
	user, board, todo, _ := s.seedBoard()

	task, err := s.tasks.CreateTask(CreateTaskInput{
		BoardID:     board.ID,
		ColumnID:    todo.ID,
		Title:       "first",
		Priority:    models.PriorityUrgent,
		CreatedByID: user.ID,
	})

	s.NoError(err)
	s.Equal(0, task.Position)
	s.Equal(models.PriorityUrgent, task.Priority)
}

func (s *TaskServiceTestSuite) TestCreateTask_ColumnMustBelongToBoard() {
	user, board, _, _ := s.seedBoard()
	org := s.createOrganization("Globex", "globex")
	s.addMember(org.ID, user.ID, models.RoleMember)
	other := s.createBoard(org.ID, user.ID, models.VisibilityPrivate, "other")
	foreign := s.createColumn(other.ID, "X", 0)

	_, err := s.tasks.CreateTask(CreateTaskInput{
		BoardID:     board.ID,
		ColumnID:    foreign.ID,
		Title:       "misplaced",
		CreatedByID: user.ID,
	})

	s.ErrorIs(err, ErrColumnNotInBoard)
}

func (s *TaskServiceTestSuite) TestCreateTask_PlainMemberDenied() {
	owner := s.createUser("owner")
	member := s.createUser("member")
	org := s.createOrganization("Acme", "acme")
	s.addMember(org.ID, member.ID, models.RoleMember)
	board := s.createBoard(org.ID, owner.ID, models.VisibilityPublic, "board")
	todo := s.createColumn(board.ID, "To Do", 0)

	_, err := s.tasks.CreateTask(CreateTaskInput{
		BoardID:     board.ID,
		ColumnID:    todo.ID,
		Title:       "nope",
		CreatedByID: member.ID,
	})

	s.ErrorIs(err, ErrAccessDenied)
}

func (s *TaskServiceTestSuite) TestUpdateTask_OwnerEditsEverything() {
	user, board, todo, done := s.seedBoard()
	task := s.createTask(board, todo.ID, "task", 0, user.ID)

	title := "renamed"
	priority := models.PriorityHigh
	updated, err := s.tasks.UpdateTask(task.ID, user.ID, UpdateTaskInput{
		Title:    &title,
		Priority: &priority,
		ColumnID: &done.ID,
	})

	s.NoError(err)
	s.Equal("renamed", updated.Title)
	s.Equal(models.PriorityHigh, updated.Priority)
	s.Equal(done.ID, updated.ColumnID)
}

func (s *TaskServiceTestSuite) TestUpdateTask_ClearAssignee() {
	user, board, todo, _ := s.seedBoard()
	task := s.createTask(board, todo.ID, "task", 0, user.ID)
	s.Require().NoError(s.db.Model(task).Update("assignee_id", user.ID).Error)

	updated, err := s.tasks.UpdateTask(task.ID, user.ID, UpdateTaskInput{ClearAssignee: true})

	s.NoError(err)
	s.Nil(updated.AssigneeID)
}

func (s *TaskServiceTestSuite) TestUpdateTask_AssigneeMayOnlyChangeColumn() {
	owner := s.createUser("owner")
	member := s.createUser("member")
	org := s.createOrganization("Acme", "acme")
	s.addMember(org.ID, member.ID, models.RoleMember)
	board := s.createBoard(org.ID, owner.ID, models.VisibilityPublic, "board")
	todo := s.createColumn(board.ID, "To Do", 0)
	done := s.createColumn(board.ID, "Done", 1)
	task := s.createTask(board, todo.ID, "task", 0, owner.ID)
	s.Require().NoError(s.db.Model(task).Update("assignee_id", member.ID).Error)

	// column-only change is allowed for the assignee
	updated, err := s.tasks.UpdateTask(task.ID, member.ID, UpdateTaskInput{ColumnID: &done.ID})
	s.NoError(err)
	s.Equal(done.ID, updated.ColumnID)

	// anything else is not
	title := "renamed"
	_, err = s.tasks.UpdateTask(task.ID, member.ID, UpdateTaskInput{
		Title:    &title,
		ColumnID: &todo.ID,
	})
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *TaskServiceTestSuite) TestUpdateTask_NonAssigneeMemberDenied() {
	owner := s.createUser("owner")
	member := s.createUser("member")
	org := s.createOrganization("Acme", "acme")
	s.addMember(org.ID, member.ID, models.RoleMember)
	board := s.createBoard(org.ID, owner.ID, models.VisibilityPublic, "board")
	todo := s.createColumn(board.ID, "To Do", 0)
	done := s.createColumn(board.ID, "Done", 1)
	task := s.createTask(board, todo.ID, "task", 0, owner.ID)

	_, err := s.tasks.UpdateTask(task.ID, member.ID, UpdateTaskInput{ColumnID: &done.ID})

	s.ErrorIs(err, ErrAccessDenied)
}

func (s *TaskServiceTestSuite) TestDeleteTask_CascadesComments() {
	user, board, todo, _ := s.seedBoard()
	task := s.createTask(board, todo.ID, "task", 0, user.ID)
	s.Require().NoError(s.db.Create(&models.TaskComment{
		TaskID: task.ID, AuthorID: user.ID, Content: "bye",
	}).Error)

	s.NoError(s.tasks.DeleteTask(task.ID, user.ID))

	var count int64
	s.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	s.Zero(count)
	s.db.Model(&models.TaskComment{}).Where("task_id = ?", task.ID).Count(&count)
	s.Zero(count)
}

func (s *TaskServiceTestSuite) TestMoveTask_ShiftsTargetColumn() {
	user, board, todo, done := s.seedBoard()
	moved := s.createTask(board, todo.ID, "moved", 0, user.ID)
	d0 := s.createTask(board, done.ID, "d0", 0, user.ID)
	d1 := s.createTask(board, done.ID, "d1", 1, user.ID)
	d2 := s.createTask(board, done.ID, "d2", 2, user.ID)

	before := s.countTasksOnBoard(board.ID)

	result, err := s.tasks.MoveTask(moved.ID, done.ID, 1, user.ID)

	s.NoError(err)
	s.Equal(done.ID, result.ColumnID)
	s.Equal(1, result.Position)

	got := s.taskPositions(done.ID)
	s.Equal(0, got[d0.ID])
	s.Equal(1, got[moved.ID])
	s.Equal(2, got[d1.ID])
	s.Equal(3, got[d2.ID])

	// no task appears or disappears and positions stay distinct per column
	s.Equal(before, s.countTasksOnBoard(board.ID))
	seen := make(map[int]bool)
	for _, pos := range got {
		s.False(seen[pos])
		seen[pos] = true
	}
}

func (s *TaskServiceTestSuite) TestMoveTask_WithinColumn() {
	user, board, todo, _ := s.seedBoard()
	t0 := s.createTask(board, todo.ID, "t0", 0, user.ID)
	t1 := s.createTask(board, todo.ID, "t1", 1, user.ID)
	t2 := s.createTask(board, todo.ID, "t2", 2, user.ID)

	result, err := s.tasks.MoveTask(t2.ID, todo.ID, 0, user.ID)

	s.NoError(err)
	s.Equal(0, result.Position)

	got := s.taskPositions(todo.ID)
	s.Equal(0, got[t2.ID])
	s.Equal(1, got[t0.ID])
	s.Equal(2, got[t1.ID])
}

func (s *TaskServiceTestSuite) TestMoveTask_SourceColumnKeepsGap() {
	user, board, todo, done := s.seedBoard()
	t0 := s.createTask(board, todo.ID, "t0", 0, user.ID)
	t1 := s.createTask(board, todo.ID, "t1", 1, user.ID)
	t2 := s.createTask(board, todo.ID, "t2", 2, user.ID)

	_, err := s.tasks.MoveTask(t1.ID, done.ID, 0, user.ID)

	s.NoError(err)
	got := s.taskPositions(todo.ID)
	s.Equal(0, got[t0.ID])
	s.Equal(2, got[t2.ID]) // gap at 1 is fine, order is relative
}

func (s *TaskServiceTestSuite) TestMoveTask_CrossBoardRejected() {
	user, board, todo, _ := s.seedBoard()
	org := s.createOrganization("Globex", "globex")
	s.addMember(org.ID, user.ID, models.RoleMember)
	other := s.createBoard(org.ID, user.ID, models.VisibilityPrivate, "other")
	foreign := s.createColumn(other.ID, "X", 0)
	task := s.createTask(board, todo.ID, "task", 0, user.ID)

	_, err := s.tasks.MoveTask(task.ID, foreign.ID, 0, user.ID)

	s.ErrorIs(err, ErrColumnNotInBoard)
}

func (s *TaskServiceTestSuite) TestMoveTask_MissingTargetColumn() {
	user, board, todo, _ := s.seedBoard()
	task := s.createTask(board, todo.ID, "task", 0, user.ID)

	_, err := s.tasks.MoveTask(task.ID, 9999, 0, user.ID)

	s.ErrorIs(err, ErrColumnNotFound)
}

func (s *TaskServiceTestSuite) TestMoveTask_AssigneeMayMoveOwnTask() {
	owner := s.createUser("owner")
	member := s.createUser("member")
	org := s.createOrganization("Acme", "acme")
	s.addMember(org.ID, member.ID, models.RoleMember)
	board := s.createBoard(org.ID, owner.ID, models.VisibilityPublic, "board")
	todo := s.createColumn(board.ID, "To Do", 0)
	done := s.createColumn(board.ID, "Done", 1)
	own := s.createTask(board, todo.ID, "own", 0, owner.ID)
	s.Require().NoError(s.db.Model(own).Update("assignee_id", member.ID).Error)
	other := s.createTask(board, todo.ID, "other", 1, owner.ID)

	moved, err := s.tasks.MoveTask(own.ID, done.ID, 0, member.ID)
	s.NoError(err)
	s.Equal(done.ID, moved.ColumnID)

	_, err = s.tasks.MoveTask(other.ID, done.ID, 0, member.ID)
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *TaskServiceTestSuite) TestReorderTasks_DensePositions() {
	user, board, todo, _ := s.seedBoard()
	a := s.createTask(board, todo.ID, "a", 0, user.ID)
	b := s.createTask(board, todo.ID, "b", 3, user.ID)
	c := s.createTask(board, todo.ID, "c", 9, user.ID)

	err := s.tasks.ReorderTasks(todo.ID, []uint64{c.ID, a.ID, b.ID}, user.ID)

	s.NoError(err)
	got := s.taskPositions(todo.ID)
	s.Equal(0, got[c.ID])
	s.Equal(1, got[a.ID])
	s.Equal(2, got[b.ID])
}

func (s *TaskServiceTestSuite) TestReorderTasks_Idempotent() {
	user, board, todo, _ := s.seedBoard()
	a := s.createTask(board, todo.ID, "a", 0, user.ID)
	b := s.createTask(board, todo.ID, "b", 1, user.ID)
	c := s.createTask(board, todo.ID, "c", 2, user.ID)

	order := []uint64{b.ID, c.ID, a.ID}
	s.NoError(s.tasks.ReorderTasks(todo.ID, order, user.ID))
	first := s.taskPositions(todo.ID)
	s.NoError(s.tasks.ReorderTasks(todo.ID, order, user.ID))
	second := s.taskPositions(todo.ID)

	s.Equal(first, second)
}

func (s *TaskServiceTestSuite) TestReorderTasks_ForeignTaskRejected() {
	user, board, todo, done := s.seedBoard()
	a := s.createTask(board, todo.ID, "a", 0, user.ID)
	elsewhere := s.createTask(board, done.ID, "elsewhere", 0, user.ID)

	err := s.tasks.ReorderTasks(todo.ID, []uint64{a.ID, elsewhere.ID}, user.ID)

	s.ErrorIs(err, ErrTaskNotInColumn)
	s.Equal(0, s.taskPositions(todo.ID)[a.ID])
	s.Equal(0, s.taskPositions(done.ID)[elsewhere.ID])
}

func (s *TaskServiceTestSuite) TestReorderTasks_PlainMemberDenied() {
	owner := s.createUser("owner")
	member := s.createUser("member")
	org := s.createOrganization("Acme", "acme")
	s.addMember(org.ID, member.ID, models.RoleMember)
	board := s.createBoard(org.ID, owner.ID, models.VisibilityPublic, "board")
	todo := s.createColumn(board.ID, "To Do", 0)
	a := s.createTask(board, todo.ID, "a", 0, owner.ID)

	err := s.tasks.ReorderTasks(todo.ID, []uint64{a.ID}, member.ID)

	s.ErrorIs(err, ErrAccessDenied)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
