package service

import (
	"os"
	"sync"
	"testing"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func sessionQuestions(n int) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, n)
	for i := range questions {
		questions[i] = model.QuizQuestion{
			Question:   "q",
			Options:    []string{"a", "b", "c", "d"},
			Correct:    1,
			Difficulty: model.DifficultyMedium,
		}
	}
	return questions
}

// answerSession 按顺序答对前 correct 题，答错其余题目
func answerSession(t *testing.T, s *QuizSession, correct int) {
	t.Helper()
	for i := range s.Questions {
		option := 0 // 错误选项
		if i < correct {
			option = s.Questions[i].Correct
		}
		require.NoError(t, s.SelectAnswer(i, option))
	}
}

func TestSessionScorePassesAtSeventy(t *testing.T) {
	s := NewQuizSession(1, 1, sessionQuestions(12), 1800)
	answerSession(t, s, 9)

	result := s.Submit()

	assert.Equal(t, 75, result.Score) // 9/12
	assert.True(t, result.Passed)
	assert.Equal(t, 9, result.CorrectAnswers)
	assert.Equal(t, 12, result.TotalQuestions)
}

func TestSessionScoreFailsBelowSeventy(t *testing.T) {
	s := NewQuizSession(1, 1, sessionQuestions(12), 1800)
	answerSession(t, s, 8)

	result := s.Submit()

	assert.Equal(t, 67, result.Score) // 8/12 = 66.67 四舍五入
	assert.False(t, result.Passed)
}

func TestSessionSubmitIdempotent(t *testing.T) {
	s := NewQuizSession(1, 1, sessionQuestions(4), 1800)
	answerSession(t, s, 4)

	first := s.Submit()
	second := s.Submit()

	assert.Same(t, first, second)
	assert.True(t, s.Submitted)
}

func TestSessionSubmitEmptyQuestions(t *testing.T) {
	s := NewQuizSession(1, 1, nil, 1800)

	result := s.Submit()

	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
}

func TestSessionAnswerCanBeChanged(t *testing.T) {
	s := NewQuizSession(1, 1, sessionQuestions(3), 1800)

	require.NoError(t, s.SelectAnswer(0, 0))
	require.NoError(t, s.SelectAnswer(0, 1))

	assert.Equal(t, 1, s.Answers[0])
	assert.True(t, s.Revealed[0])

	view := s.View()
	assert.Equal(t, "correct", view.Feedback[0])
}

func TestSessionAnswerValidation(t *testing.T) {
	s := NewQuizSession(1, 1, sessionQuestions(3), 1800)

	assert.ErrorIs(t, s.SelectAnswer(-1, 0), util.ErrQuestionOutOfRange)
	assert.ErrorIs(t, s.SelectAnswer(3, 0), util.ErrQuestionOutOfRange)
	assert.ErrorIs(t, s.SelectAnswer(0, 4), util.ErrQuestionOutOfRange)

	s.Submit()
	assert.ErrorIs(t, s.SelectAnswer(0, 0), util.ErrSessionSubmitted)
}

func TestSessionNextGatedOnAnswer(t *testing.T) {
	s := NewQuizSession(1, 1, sessionQuestions(3), 1800)

	assert.False(t, s.CanAdvance())
	assert.ErrorIs(t, s.Next(), util.ErrAnswerRequired)

	require.NoError(t, s.SelectAnswer(0, 1))
	assert.True(t, s.CanAdvance())
	require.NoError(t, s.Next())
	assert.Equal(t, 1, s.Current)

	// 后退不设门槛
	require.NoError(t, s.Prev())
	assert.Equal(t, 0, s.Current)
	assert.ErrorIs(t, s.Prev(), util.ErrQuestionOutOfRange)
}

func TestSessionNavigateReachesAnyIndex(t *testing.T) {
	s := NewQuizSession(1, 1, sessionQuestions(3), 1800)

	// 面板跳转不要求当前题已作答
	require.NoError(t, s.Navigate(2))
	assert.Equal(t, 2, s.Current)
	require.NoError(t, s.Navigate(0))

	assert.ErrorIs(t, s.Navigate(3), util.ErrQuestionOutOfRange)
	assert.ErrorIs(t, s.Navigate(-1), util.ErrQuestionOutOfRange)

	s.Submit()
	assert.ErrorIs(t, s.Navigate(1), util.ErrSessionSubmitted)
}

func TestSessionViewHidesUnansweredCorrectOptions(t *testing.T) {
	s := NewQuizSession(1, 1, sessionQuestions(3), 1800)
	require.NoError(t, s.SelectAnswer(0, 1))
	require.NoError(t, s.SelectAnswer(1, 0))

	view := s.View()

	assert.Len(t, view.Questions, 3)
	assert.Equal(t, "correct", view.Feedback[0])
	assert.Equal(t, "wrong", view.Feedback[1])
	assert.Equal(t, 1, view.RevealedCorrect[0])
	_, revealed := view.RevealedCorrect[2]
	assert.False(t, revealed)
	assert.Equal(t, 1800, view.TimeLeft)
}

// fakeCourseStore 同时充当课程读取与结课回调
type fakeCourseStore struct {
	mu        sync.Mutex
	course    *model.Course
	completed []uint
	done      chan struct{}
}

func (f *fakeCourseStore) GetCourse(id uint) (*model.Course, error) {
	if f.course == nil {
		return nil, util.ErrCourseNotFound
	}
	return f.course, nil
}

func (f *fakeCourseStore) CompleteCourse(userID, courseID uint) (*model.Enrollment, error) {
	f.mu.Lock()
	f.completed = append(f.completed, courseID)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
	return &model.Enrollment{}, nil
}

func newTestManager(store *fakeCourseStore) *SessionManager {
	return NewSessionManager(NewQuizService(), store, store, 1800, time.Hour)
}

func TestManagerStartAndGet(t *testing.T) {
	store := &fakeCourseStore{course: testCourse()}
	m := newTestManager(store)
	defer m.Shutdown()

	session, err := m.Start(42, 1)
	require.NoError(t, err)
	assert.Len(t, session.Questions, QuizQuestionCount)

	got, err := m.Get(session.ID, 42)
	require.NoError(t, err)
	assert.Same(t, session, got)

	// 其他用户拿不到会话
	_, err = m.Get(session.ID, 7)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestManagerStartUnknownCourse(t *testing.T) {
	store := &fakeCourseStore{}
	m := newTestManager(store)
	defer m.Shutdown()

	_, err := m.Start(1, 99)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestManagerSubmitCompletesCourseOnPass(t *testing.T) {
	store := &fakeCourseStore{course: testCourse(), done: make(chan struct{})}
	m := newTestManager(store)
	defer m.Shutdown()

	session, err := m.Start(42, 1)
	require.NoError(t, err)

	for i := range session.Questions {
		require.NoError(t, session.SelectAnswer(i, session.Questions[i].Correct))
	}

	result, err := m.Submit(session.ID, 42)
	require.NoError(t, err)
	assert.True(t, result.Passed)

	select {
	case <-store.done:
	case <-time.After(2 * time.Second):
		t.Fatal("course completion was not triggered")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []uint{1}, store.completed)
}

func TestManagerSubmitFailDoesNotCompleteCourse(t *testing.T) {
	store := &fakeCourseStore{course: testCourse()}
	m := newTestManager(store)
	defer m.Shutdown()

	session, err := m.Start(42, 1)
	require.NoError(t, err)

	result, err := m.Submit(session.ID, 42)
	require.NoError(t, err)
	assert.False(t, result.Passed)

	// 重复提交返回同一结果
	again, err := m.Submit(session.ID, 42)
	require.NoError(t, err)
	assert.Same(t, result, again)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.completed)
}

func TestManagerTimerAutoSubmitsOnExpiry(t *testing.T) {
	store := &fakeCourseStore{course: testCourse()}
	m := NewSessionManager(NewQuizService(), store, store, 1, time.Hour)
	defer m.Shutdown()

	session, err := m.Start(42, 1)
	require.NoError(t, err)

	// 倒计时归零后会话应自动结算
	deadline := time.Now().Add(5 * time.Second)
	for !session.View().Submitted {
		if time.Now().After(deadline) {
			t.Fatal("session was not auto-submitted after the countdown expired")
		}
		time.Sleep(50 * time.Millisecond)
	}

	view := session.View()
	require.NotNil(t, view.Result)
	assert.False(t, view.Result.Passed)

	// 超时结算后手动提交幂等，返回同一结果
	again, err := m.Submit(session.ID, 42)
	require.NoError(t, err)
	assert.Same(t, view.Result, again)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.completed)
}

func TestManagerSubmitReleasesActiveGauge(t *testing.T) {
	store := &fakeCourseStore{course: testCourse()}
	m := newTestManager(store)
	defer m.Shutdown()

	before := testutil.ToFloat64(monitoring.ActiveQuizSessions)

	session, err := m.Start(42, 1)
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(monitoring.ActiveQuizSessions))

	_, err = m.Submit(session.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, before, testutil.ToFloat64(monitoring.ActiveQuizSessions))

	// 已结算的会话再关闭不会重复扣减
	require.NoError(t, m.Close(session.ID, 42))
	assert.Equal(t, before, testutil.ToFloat64(monitoring.ActiveQuizSessions))
}

func TestManagerClose(t *testing.T) {
	store := &fakeCourseStore{course: testCourse()}
	m := newTestManager(store)
	defer m.Shutdown()

	session, err := m.Start(42, 1)
	require.NoError(t, err)

	require.NoError(t, m.Close(session.ID, 42))
	_, err = m.Get(session.ID, 42)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	// 再次关闭返回未找到
	assert.ErrorIs(t, m.Close(session.ID, 42), util.ErrSessionNotFound)
}
