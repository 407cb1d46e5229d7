package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// CourseSeeder upserts catalogue courses by code.
type CourseSeeder interface {
	Upsert(ctx context.Context, c *model.Course) error
}

// ResourceSeeder upserts resources by title.
type ResourceSeeder interface {
	Upsert(ctx context.Context, r *model.Resource) error
}

// InternshipSeeder upserts internships by title and company.
type InternshipSeeder interface {
	Upsert(ctx context.Context, in *model.Internship) error
}

// QuizSeeder inserts a quiz unless one with the same title exists.
type QuizSeeder interface {
	CreateIfAbsent(ctx context.Context, q *model.Quiz) (bool, error)
}

// SeedService loads the starter catalogue. Every step is idempotent.
type SeedService struct {
	courses     CourseSeeder
	resources   ResourceSeeder
	internships InternshipSeeder
	quizzes     QuizSeeder
	log         zerolog.Logger
}

// NewSeedService creates a new SeedService.
func NewSeedService(courses CourseSeeder, resources ResourceSeeder, internships InternshipSeeder, quizzes QuizSeeder, log zerolog.Logger) *SeedService {
	return &SeedService{
		courses:     courses,
		resources:   resources,
		internships: internships,
		quizzes:     quizzes,
		log:         log.With().Str("component", "seed_service").Logger(),
	}
}

// SeedSummary counts what a seed run touched.
type SeedSummary struct {
	Courses     int
	Resources   int
	Internships int
	QuizCreated bool
}

// Run seeds courses, resources, internships and the sample quiz.
func (s *SeedService) Run(ctx context.Context) (SeedSummary, error) {
	var sum SeedSummary

	for _, c := range StarterCourses() {
		if err := s.courses.Upsert(ctx, &c); err != nil {
			return sum, fmt.Errorf("seed course %s: %w", c.Code, err)
		}
		sum.Courses++
	}
	for _, r := range starterResources {
		if err := s.resources.Upsert(ctx, &r); err != nil {
			return sum, fmt.Errorf("seed resource %q: %w", r.Title, err)
		}
		sum.Resources++
	}
	for _, in := range starterInternships {
		if err := s.internships.Upsert(ctx, &in); err != nil {
			return sum, fmt.Errorf("seed internship %q: %w", in.Title, err)
		}
		sum.Internships++
	}

	quiz := sampleQuiz()
	created, err := s.quizzes.CreateIfAbsent(ctx, &quiz)
	if err != nil {
		return sum, fmt.Errorf("seed quiz: %w", err)
	}
	sum.QuizCreated = created

	s.log.Info().
		Int("courses", sum.Courses).
		Int("resources", sum.Resources).
		Int("internships", sum.Internships).
		Bool("quiz_created", sum.QuizCreated).
		Msg("Catalogue seeded")
	return sum, nil
}

// ─── Starter data ───────────────────────────────────────────────────────────

type catalogueSubject struct {
	name       string
	prefix     string
	instructor string
	examDay    int
}

var catalogueSubjects = map[string]catalogueSubject{
	"ENG":  {"English", "ENG", "Ms. Sarah Wilson", 15},
	"MATH": {"Mathematics", "MATH", "Mr. David Kumar", 20},
	"SCI":  {"Science", "SCI", "Ms. Priya Sharma", 25},
	"SS":   {"Social Studies", "SS", "Mr. Rajesh Patel", 30},
}

// One row per "Subject - Class N" course.
var catalogueRows = []struct {
	subject     string
	class       int
	description string
	progress    int
}{
	{"ENG", 1, "Basic English language skills, alphabets, and simple words", 60},
	{"MATH", 1, "Basic numbers, counting, and simple arithmetic", 70},
	{"SCI", 1, "Introduction to basic science concepts and nature", 55},
	{"ENG", 2, "Reading, writing, and basic grammar", 65},
	{"MATH", 2, "Addition, subtraction, and basic problem solving", 75},
	{"ENG", 3, "Reading comprehension and creative writing", 70},
	{"MATH", 3, "Multiplication, division, and fractions", 80},
	{"SCI", 3, "Plants, animals, and basic environmental science", 60},
	{"ENG", 4, "Advanced grammar and literature", 75},
	{"MATH", 4, "Decimals, geometry, and measurement", 85},
	{"SCI", 4, "Matter, energy, and simple machines", 70},
	{"SS", 4, "History, geography, and civics basics", 65},
	{"ENG", 5, "Advanced reading, writing, and communication", 80},
	{"MATH", 5, "Advanced arithmetic and basic algebra", 90},
	{"SCI", 5, "Physics, chemistry, and biology basics", 75},
	{"SS", 5, "Indian history, geography, and government", 70},
	{"ENG", 6, "Literature analysis and creative writing", 85},
	{"MATH", 6, "Algebra, geometry, and statistics", 95},
	{"SCI", 6, "Physics, chemistry, and biology fundamentals", 80},
	{"SS", 6, "World history and geography", 75},
	{"ENG", 7, "Advanced literature and composition", 90},
	{"MATH", 7, "Advanced algebra and geometry", 100},
	{"SCI", 7, "Advanced physics, chemistry, and biology", 85},
	{"SS", 7, "Medieval history and world geography", 80},
	{"ENG", 8, "Literature analysis and advanced writing", 95},
	{"MATH", 8, "Algebra, geometry, and trigonometry basics", 100},
	{"SCI", 8, "Physics, chemistry, and biology concepts", 90},
	{"SS", 8, "Modern history and political science", 85},
	{"ENG", 9, "Literature, grammar, and composition", 100},
	{"MATH", 9, "Algebra, geometry, and trigonometry", 100},
	{"SCI", 9, "Physics, chemistry, and biology", 95},
	{"SS", 9, "History, geography, and economics", 90},
	{"ENG", 10, "Advanced literature and communication skills", 100},
	{"MATH", 10, "Advanced algebra, geometry, and statistics", 100},
	{"SCI", 10, "Physics, chemistry, and biology (Board level)", 100},
	{"SS", 10, "History, geography, and political science (Board level)", 100},
}

// creditsForClass: 2 up to class 5, 3 for classes 6-8, 4 above.
func creditsForClass(class int) int {
	switch {
	case class <= 5:
		return 2
	case class <= 8:
		return 3
	default:
		return 4
	}
}

// StarterCourses builds the class-by-class school catalogue.
func StarterCourses() []model.Course {
	courses := make([]model.Course, 0, len(catalogueRows))
	for _, row := range catalogueRows {
		sub := catalogueSubjects[row.subject]
		exam := time.Date(2025, time.March, sub.examDay, 0, 0, 0, 0, time.UTC)
		courses = append(courses, model.Course{
			Name:        fmt.Sprintf("%s - Class %d", sub.name, row.class),
			Code:        fmt.Sprintf("%s-%d", sub.prefix, row.class),
			Description: row.description,
			Credits:     creditsForClass(row.class),
			Instructor:  sub.instructor,
			Semester:    "Academic Year",
			Year:        "2024-25",
			Progress:    row.progress,
			ExamDate:    &exam,
		})
	}
	return courses
}

var starterInternships = []model.Internship{
	{Title: "MERN Stack Developer Intern", Company: "Innovate Solutions", Location: "Remote", Description: "Work on our flagship educational platform using MongoDB, Express, React, and Node.js.", ApplyURL: "#"},
	{Title: "Frontend Developer Intern (React)", Company: "Tech Prodigy", Location: "Pune, Maharashtra", Description: "Help build beautiful and responsive user interfaces with React and Tailwind CSS.", ApplyURL: "#"},
	{Title: "AI/ML Intern", Company: "Data Insights Co.", Location: "Remote", Description: "Assist our data science team in developing predictive models and AI-powered features.", ApplyURL: "#"},
}

var starterResources = []model.Resource{
	{Subject: "Mathematics", Title: "Khan Academy: Fractions", Type: model.ResourceYouTube, URL: "https://www.youtube.com/@khanacademy"},
	{Subject: "Science", Title: "CrashCourse Biology", Type: model.ResourceYouTube, URL: "https://www.youtube.com/@crashcourse"},
	{Subject: "English", Title: "Grammarly Blog: Writing Tips", Type: model.ResourceBlog, URL: "https://www.grammarly.com/blog/"},
	{Subject: "Computer Science", Title: "Go by Example", Type: model.ResourceBlog, URL: "https://gobyexample.com/"},
}

func sampleQuiz() model.Quiz {
	return model.Quiz{
		Title:   "General Knowledge Starter",
		Subject: "General",
		Questions: []model.QuizQuestion{
			{Text: "What is 7 x 8?", Options: []string{"54", "56", "58", "64"}, CorrectAnswer: "56"},
			{Text: "Which planet is known as the Red Planet?", Options: []string{"Venus", "Mars", "Jupiter", "Saturn"}, CorrectAnswer: "Mars"},
			{Text: "What is the chemical symbol for water?", Options: []string{"H2O", "O2", "CO2", "NaCl"}, CorrectAnswer: "H2O"},
		},
	}
}
