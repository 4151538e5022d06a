package service

import (
	"fmt"
	"learnhub_backend/internal/model"
	"math/rand"
)

// QuizQuestionCount 每次测验固定题目数
const QuizQuestionCount = 12

// QuizService 根据课程元数据用模板生成练习测验。
// 随机源由调用方注入，固定种子可复现同一套题目顺序。
type QuizService struct{}

func NewQuizService() *QuizService {
	return &QuizService{}
}

// Generate 生成恰好 12 道题：3 道通用题 + 2 道领域题 + 至多 3 道技能题，
// 不足时从备用题库补齐到 10 道，洗牌后追加固定的 2 道收尾题（保持顺序）。
func (s *QuizService) Generate(course *model.Course, rng *rand.Rand) []model.QuizQuestion {
	base := []model.QuizQuestion{
		{
			Question: fmt.Sprintf("Which statement about %s is MOST accurate?", course.Title),
			Options: []string{
				"It prioritizes developer experience over performance in all cases",
				"It enforces strict patterns that cannot be customized",
				"It offers trade-offs between flexibility, speed, and scalability",
				"It is only suitable for small pet projects",
			},
			Correct:    2,
			Difficulty: model.DifficultyMedium,
		},
		{
			Question: fmt.Sprintf("In %s, what is the primary goal of architecture decisions?", course.Category),
			Options: []string{
				"Maximize lines of code",
				"Minimize cyclomatic complexity and improve maintainability",
				"Avoid using design patterns",
				"Disable type checking to move faster",
			},
			Correct:    1,
			Difficulty: model.DifficultyHard,
		},
		{
			Question: fmt.Sprintf("Which practice reduces bugs in %s?", course.Title),
			Options: []string{
				"Global mutable state everywhere",
				"Clear module boundaries and unit tests",
				"Relying solely on manual QA",
				"Skipping code reviews",
			},
			Correct:    1,
			Difficulty: model.DifficultyMedium,
		},
	}

	pool := append(append(base, domainQuestions(course.Category)...), skillQuestions(course)...)

	// 技能不足 3 个时用备用题补齐，保证总题数恒为 12
	for i := 0; len(pool) < QuizQuestionCount-2 && i < len(reserveQuestions); i++ {
		pool = append(pool, reserveQuestions[i])
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	// 收尾两题固定在最后，不参与洗牌
	pool = append(pool,
		model.QuizQuestion{
			Question: fmt.Sprintf("After finishing %s, what maximizes learning retention?", course.Title),
			Options: []string{
				"Read more docs",
				"Build and ship a small project",
				"Skip practice",
				"Focus on unrelated topics",
			},
			Correct:    1,
			Difficulty: model.DifficultyMedium,
		},
		model.QuizQuestion{
			Question: "Which option is MOST secure when handling tokens?",
			Options: []string{
				"Store in localStorage",
				"Store in cookies with httpOnly + SameSite",
				"Embed in HTML",
				"Log to console",
			},
			Correct:    1,
			Difficulty: model.DifficultyHard,
		},
	)

	if len(pool) > QuizQuestionCount {
		pool = pool[:QuizQuestionCount]
	}
	return pool
}

// reserveQuestions 通用补位题，不依赖课程元数据
var reserveQuestions = []model.QuizQuestion{
	{
		Question: "Which habit keeps a codebase healthy over time?",
		Options: []string{
			"Merging without review",
			"Small, reviewed, well-tested changes",
			"Rewriting from scratch every quarter",
			"Avoiding refactors entirely",
		},
		Correct:    1,
		Difficulty: model.DifficultyMedium,
	},
	{
		Question: "What is the PRIMARY purpose of version control?",
		Options: []string{
			"Backing up binaries",
			"Tracking changes and enabling collaboration",
			"Replacing documentation",
			"Enforcing code style",
		},
		Correct:    1,
		Difficulty: model.DifficultyMedium,
	},
	{
		Question: "Which debugging approach is MOST effective?",
		Options: []string{
			"Changing code randomly until it works",
			"Reproducing the issue and narrowing the cause systematically",
			"Ignoring intermittent failures",
			"Disabling error reporting",
		},
		Correct:    1,
		Difficulty: model.DifficultyHard,
	},
	{
		Question: "What makes automated tests valuable?",
		Options: []string{
			"They remove the need for design",
			"They catch regressions and document expected behavior",
			"They guarantee zero bugs",
			"They replace monitoring in production",
		},
		Correct:    1,
		Difficulty: model.DifficultyMedium,
	},
	{
		Question: "Which statement about technical debt is TRUE?",
		Options: []string{
			"It never needs to be repaid",
			"Deliberate, tracked shortcuts can be reasonable trade-offs",
			"It only exists in legacy systems",
			"Adding more code always reduces it",
		},
		Correct:    1,
		Difficulty: model.DifficultyHard,
	},
}

// domainQuestions 按类目选题库；Frontend/Backend 之外的类目一律落入数据科学题库
func domainQuestions(category string) []model.QuizQuestion {
	switch category {
	case "Frontend":
		return []model.QuizQuestion{
			{
				Question: "What improves React rendering performance the MOST?",
				Options: []string{
					"Re-render everything on every state change",
					"Memoize expensive components and stabilize props",
					"Use inline functions everywhere",
					"Disable strict mode",
				},
				Correct:    1,
				Difficulty: model.DifficultyHard,
			},
			{
				Question: "Which is TRUE about state management?",
				Options: []string{
					"Lift state to the highest ancestor always",
					"Prefer local state; lift only when needed",
					"Never use context",
					"Use global stores for every component",
				},
				Correct:    1,
				Difficulty: model.DifficultyMedium,
			},
		}
	case "Backend":
		return []model.QuizQuestion{
			{
				Question: "What secures a REST API BEST?",
				Options: []string{
					"Trust user input",
					"Validate, sanitize, and enforce authz for every route",
					"Use GET for mutations",
					"Log secrets in production",
				},
				Correct:    1,
				Difficulty: model.DifficultyHard,
			},
			{
				Question: "Which statement is TRUE about database indexes?",
				Options: []string{
					"Indexes always speed up writes without trade-offs",
					"Indexes speed reads but can slow writes and increase storage",
					"Indexes are unnecessary for large datasets",
					"Use an index on every column",
				},
				Correct:    1,
				Difficulty: model.DifficultyMedium,
			},
		}
	default:
		return []model.QuizQuestion{
			{
				Question:   "Which metric detects class imbalance?",
				Options:    []string{"Accuracy", "Precision", "Recall", "F1-score"},
				Correct:    3,
				Difficulty: model.DifficultyHard,
			},
			{
				Question:   "Which technique prevents overfitting?",
				Options:    []string{"Training longer", "Dropout/regularization", "Adding bias", "Removing validation set"},
				Correct:    1,
				Difficulty: model.DifficultyMedium,
			},
		}
	}
}

// skillQuestions 取课程前 3 个技能各生成一题，首题 Medium 其余 Hard
func skillQuestions(course *model.Course) []model.QuizQuestion {
	skills := course.Skills
	if len(skills) > 3 {
		skills = skills[:3]
	}

	questions := make([]model.QuizQuestion, 0, len(skills))
	for i, skill := range skills {
		difficulty := model.DifficultyHard
		if i == 0 {
			difficulty = model.DifficultyMedium
		}
		questions = append(questions, model.QuizQuestion{
			Question: fmt.Sprintf("Which best describes %s?", skill),
			Options: []string{
				fmt.Sprintf("A pattern used incorrectly in %s", course.Category),
				"A technique applicable to real projects",
				"A deprecated approach",
				"Only a theoretical concept",
			},
			Correct:    1,
			Difficulty: difficulty,
		})
	}
	return questions
}
