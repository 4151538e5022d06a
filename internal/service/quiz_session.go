package service

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuizPassScore 会话测验及格线（百分制）
const QuizPassScore = 70

// CourseProvider 会话启动时读取课程元数据
type CourseProvider interface {
	GetCourse(id uint) (*model.Course, error)
}

// CourseCompleter 测验通过后触发结课
type CourseCompleter interface {
	CompleteCourse(userID, courseID uint) (*model.Enrollment, error)
}

// QuizSession 单个进行中的测验会话。
// 所有读写都经 mu 保护，倒计时协程与 HTTP 请求并发访问。
type QuizSession struct {
	mu sync.Mutex

	ID        string
	UserID    uint
	CourseID  uint
	Questions []model.QuizQuestion

	Current   int
	Answers   map[int]int  // 题目下标 -> 已选选项
	Revealed  map[int]bool // 已作答并展示反馈的题目
	TimeLeft  int          // Seconds
	Submitted bool
	Result    *model.QuizResult
	CreatedAt time.Time

	timerStop chan struct{}
	stopOnce  sync.Once
}

// NewQuizSession 构造会话但不启动倒计时，计时由 SessionManager 负责
func NewQuizSession(userID, courseID uint, questions []model.QuizQuestion, timeLimitSeconds int) *QuizSession {
	return &QuizSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		CourseID:  courseID,
		Questions: questions,
		Answers:   make(map[int]int),
		Revealed:  make(map[int]bool),
		TimeLeft:  timeLimitSeconds,
		CreatedAt: time.Now(),
		timerStop: make(chan struct{}),
	}
}

// SelectAnswer 作答某题并立即揭示对错。允许改选，反馈随之更新；
// 已揭示状态不会回退。
func (s *QuizSession) SelectAnswer(questionIndex, option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Submitted {
		return util.ErrSessionSubmitted
	}
	if questionIndex < 0 || questionIndex >= len(s.Questions) {
		return util.ErrQuestionOutOfRange
	}
	if option < 0 || option >= len(s.Questions[questionIndex].Options) {
		return util.ErrQuestionOutOfRange
	}

	s.Answers[questionIndex] = option
	s.Revealed[questionIndex] = true
	return nil
}

// CanAdvance 当前题已作答才允许前进到下一题
func (s *QuizSession) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Revealed[s.Current]
}

// Navigate 通过题目面板跳转到任意题，只做边界检查
func (s *QuizSession) Navigate(target int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Submitted {
		return util.ErrSessionSubmitted
	}
	if target < 0 || target >= len(s.Questions) {
		return util.ErrQuestionOutOfRange
	}

	s.Current = target
	return nil
}

// Next 顺序前进一题，当前题未作答时拒绝
func (s *QuizSession) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Submitted {
		return util.ErrSessionSubmitted
	}
	if s.Current+1 >= len(s.Questions) {
		return util.ErrQuestionOutOfRange
	}
	if !s.Revealed[s.Current] {
		return util.ErrAnswerRequired
	}

	s.Current++
	return nil
}

// Prev 顺序后退一题，不设门槛
func (s *QuizSession) Prev() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Submitted {
		return util.ErrSessionSubmitted
	}
	if s.Current == 0 {
		return util.ErrQuestionOutOfRange
	}

	s.Current--
	return nil
}

// Submit 结算会话。重复提交幂等，返回首次结算的结果。
func (s *QuizSession) Submit() *model.QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked()
}

func (s *QuizSession) submitLocked() *model.QuizResult {
	if s.Submitted {
		return s.Result
	}

	correct := 0
	for i, q := range s.Questions {
		if answer, ok := s.Answers[i]; ok && answer == q.Correct {
			correct++
		}
	}

	score := 0
	if len(s.Questions) > 0 {
		score = int(math.Round(float64(correct) / float64(len(s.Questions)) * 100))
	}

	s.Submitted = true
	s.Result = &model.QuizResult{
		Score:          score,
		Passed:         score >= QuizPassScore,
		CorrectAnswers: correct,
		TotalQuestions: len(s.Questions),
	}
	return s.Result
}

// release 停止倒计时并释放活跃会话指标。
// 提交、关闭、过期回收和进程退出都会走到这里，只有首次生效。
func (s *QuizSession) release() {
	s.stopOnce.Do(func() {
		close(s.timerStop)
		monitoring.ActiveQuizSessions.Dec()
	})
}

// QuizQuestionView 下发给客户端的题目视图，不含正确答案
type QuizQuestionView struct {
	Question   string               `json:"question"`
	Options    []string             `json:"options"`
	Difficulty model.QuizDifficulty `json:"difficulty"`
}

// QuizSessionView 会话状态快照
type QuizSessionView struct {
	ID              string             `json:"id"`
	CourseID        uint               `json:"courseId"`
	Questions       []QuizQuestionView `json:"questions"`
	Current         int                `json:"current"`
	Answers         map[int]int        `json:"answers"`
	Feedback        map[int]string     `json:"feedback"` // correct / wrong
	RevealedCorrect map[int]int        `json:"revealedCorrect"`
	TimeLeft        int                `json:"timeLeft"`
	Submitted       bool               `json:"submitted"`
	Result          *model.QuizResult  `json:"result,omitempty"`
}

// View 生成脱敏快照。正确选项仅对已作答的题目揭示。
func (s *QuizSession) View() *QuizSessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := make([]QuizQuestionView, len(s.Questions))
	for i, q := range s.Questions {
		questions[i] = QuizQuestionView{
			Question:   q.Question,
			Options:    q.Options,
			Difficulty: q.Difficulty,
		}
	}

	answers := make(map[int]int, len(s.Answers))
	feedback := make(map[int]string, len(s.Answers))
	revealedCorrect := make(map[int]int, len(s.Answers))
	for i, answer := range s.Answers {
		answers[i] = answer
		revealedCorrect[i] = s.Questions[i].Correct
		if answer == s.Questions[i].Correct {
			feedback[i] = "correct"
		} else {
			feedback[i] = "wrong"
		}
	}

	return &QuizSessionView{
		ID:              s.ID,
		CourseID:        s.CourseID,
		Questions:       questions,
		Current:         s.Current,
		Answers:         answers,
		Feedback:        feedback,
		RevealedCorrect: revealedCorrect,
		TimeLeft:        s.TimeLeft,
		Submitted:       s.Submitted,
		Result:          s.Result,
	}
}

// SessionManager 内存态测验会话管理器：创建、倒计时、结算与过期回收
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*QuizSession

	quiz      *QuizService
	courses   CourseProvider
	completer CourseCompleter

	timeLimit  int
	sessionTTL time.Duration

	janitorStop chan struct{}
	closeOnce   sync.Once
}

func NewSessionManager(quiz *QuizService, courses CourseProvider, completer CourseCompleter, timeLimitSeconds int, sessionTTL time.Duration) *SessionManager {
	m := &SessionManager{
		sessions:    make(map[string]*QuizSession),
		quiz:        quiz,
		courses:     courses,
		completer:   completer,
		timeLimit:   timeLimitSeconds,
		sessionTTL:  sessionTTL,
		janitorStop: make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Start 为用户在某课程上开启新会话并启动倒计时
func (m *SessionManager) Start(userID, courseID uint) (*QuizSession, error) {
	course, err := m.courses.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	questions := m.quiz.Generate(course, rng)

	session := NewQuizSession(userID, courseID, questions, m.timeLimit)

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	monitoring.ActiveQuizSessions.Inc()
	go m.runTimer(session)

	logger.Log.Info("quiz session started",
		zap.String("sessionId", session.ID),
		zap.Uint("userId", userID),
		zap.Uint("courseId", courseID))

	return session, nil
}

// Get 查找属于该用户的会话
func (m *SessionManager) Get(sessionID string, userID uint) (*QuizSession, error) {
	m.mu.RLock()
	session, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok || session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

// Submit 结算会话：记录指标，通过时异步触发结课
func (m *SessionManager) Submit(sessionID string, userID uint) (*model.QuizResult, error) {
	session, err := m.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	alreadySubmitted := session.Submitted
	result := session.submitLocked()
	session.mu.Unlock()

	if !alreadySubmitted {
		m.finalize(session, result)
	}
	return result, nil
}

// Close 主动关闭会话（放弃测验）
func (m *SessionManager) Close(sessionID string, userID uint) error {
	session, err := m.Get(sessionID, userID)
	if err != nil {
		return err
	}
	m.remove(session)
	return nil
}

// Shutdown 停掉所有会话计时器与回收协程，进程退出前调用
func (m *SessionManager) Shutdown() {
	m.closeOnce.Do(func() {
		close(m.janitorStop)
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		session.release()
		delete(m.sessions, id)
	}
}

// finalize 提交后的一次性收尾：指标与结课联动
func (m *SessionManager) finalize(session *QuizSession, result *model.QuizResult) {
	session.release()

	outcome := "failed"
	if result.Passed {
		outcome = "passed"
	}
	monitoring.QuizSubmissions.WithLabelValues(outcome).Inc()

	logger.Log.Info("quiz session submitted",
		zap.String("sessionId", session.ID),
		zap.Uint("userId", session.UserID),
		zap.Int("score", result.Score),
		zap.Bool("passed", result.Passed))

	if result.Passed {
		go func(userID, courseID uint) {
			if _, err := m.completer.CompleteCourse(userID, courseID); err != nil {
				logger.Log.Error("failed to complete course after passed quiz",
					zap.Uint("userId", userID),
					zap.Uint("courseId", courseID),
					zap.Error(err))
			}
		}(session.UserID, session.CourseID)
	}
}

// runTimer 每秒递减剩余时间，归零时自动结算
func (m *SessionManager) runTimer(session *QuizSession) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-session.timerStop:
			return
		case <-ticker.C:
			session.mu.Lock()
			if session.Submitted {
				session.mu.Unlock()
				return
			}
			session.TimeLeft--
			expired := session.TimeLeft <= 0
			var result *model.QuizResult
			if expired {
				result = session.submitLocked()
			}
			session.mu.Unlock()

			if expired {
				logger.Log.Info("quiz session timed out", zap.String("sessionId", session.ID))
				m.finalize(session, result)
				return
			}
		}
	}
}

// janitor 定期回收超过 TTL 的会话，防止被放弃的会话常驻内存
func (m *SessionManager) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.janitorStop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.sessionTTL)

			m.mu.RLock()
			expired := make([]*QuizSession, 0)
			for _, session := range m.sessions {
				if session.CreatedAt.Before(cutoff) {
					expired = append(expired, session)
				}
			}
			m.mu.RUnlock()

			for _, session := range expired {
				logger.Log.Info("quiz session expired", zap.String("sessionId", session.ID))
				m.remove(session)
			}
		}
	}
}

func (m *SessionManager) remove(session *QuizSession) {
	session.release()

	m.mu.Lock()
	delete(m.sessions, session.ID)
	m.mu.Unlock()
}
