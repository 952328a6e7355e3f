package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	for _, category := range []Category{CategoryMoney, CategoryProcedure, CategoryEvent, CategoryHealth, CategoryOther} {
		assert.True(t, category.Valid(), string(category))
	}
	assert.False(t, Category("").Valid())
	assert.False(t, Category("chores").Valid())
}

func TestPriorityValid(t *testing.T) {
	for _, priority := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, priority.Valid(), int(priority))
	}
	assert.False(t, Priority(0).Valid())
	assert.False(t, Priority(4).Valid())
	assert.False(t, Priority(-1).Valid())
}

func TestColorValid(t *testing.T) {
	assert.True(t, ColorBlue.Valid())
	assert.True(t, ColorGreen.Valid())
	assert.False(t, Color("red").Valid())
}

func TestTaskCompleteRoundTrip(t *testing.T) {
	task := Task{Title: "t"}
	assert.False(t, task.Completed())

	now := time.Now()
	task.Complete(now)
	assert.True(t, task.Completed())
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)

	task.Incomplete()
	assert.False(t, task.Completed())
	assert.Nil(t, task.CompletedAt)
}

func TestDeleteTaskCascade_LeavesSiblingsAlone(t *testing.T) {
	db := newTestDB(t)

	couple := Couple{}
	require.NoError(t, db.Create(&couple).Error)
	user := User{Email: "a@example.com", Name: "A", PasswordHash: "x", Color: ColorBlue}
	require.NoError(t, db.Create(&user).Error)

	doomed := Task{CoupleID: couple.ID, Title: "doomed"}
	survivor := Task{CoupleID: couple.ID, Title: "survivor"}
	require.NoError(t, db.Create(&doomed).Error)
	require.NoError(t, db.Create(&survivor).Error)

	doomedID := doomed.ID
	child := Task{CoupleID: couple.ID, Title: "child", ParentID: &doomedID}
	require.NoError(t, db.Create(&child).Error)
	require.NoError(t, db.Create(&Comment{TaskID: doomed.ID, UserID: user.ID, Content: "bye"}).Error)
	require.NoError(t, db.Create(&Comment{TaskID: survivor.ID, UserID: user.ID, Content: "stay"}).Error)

	require.NoError(t, DeleteTaskCascade(db, doomed.ID))

	var tasks []Task
	require.NoError(t, db.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, "survivor", tasks[0].Title)

	var comments []Comment
	require.NoError(t, db.Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, "stay", comments[0].Content)
}
