package model

// QuizDifficulty 生成题目仅有两档难度，不生成 Easy
type QuizDifficulty string

const (
	DifficultyMedium QuizDifficulty = "Medium"
	DifficultyHard   QuizDifficulty = "Hard"
)

// QuizQuestion 由模板生成的练习题，仅存在于测验会话内，不落库
// swagger:model QuizQuestion
type QuizQuestion struct {
	Question   string         `json:"question"`
	Options    []string       `json:"options"` // 固定 4 个选项
	Correct    int            `json:"-"`       // 正确选项下标，不下发给客户端
	Difficulty QuizDifficulty `json:"difficulty"`
}

// QuizResult 测验会话提交后的结果
// swagger:model QuizResult
type QuizResult struct {
	Score          int  `json:"score"` // 0-100
	Passed         bool `json:"passed"`
	CorrectAnswers int  `json:"correctAnswers"`
	TotalQuestions int  `json:"totalQuestions"`
}
