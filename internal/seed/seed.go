// Package seed loads the starter catalog: two accounts and the legal-topic
// modules with their quiz sets. Quiz answers in the source material are
// letter-coded (A-D); they are converted to canonical indices on the way in.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rights360/rights360/internal/content"
)

type seedQuiz struct {
	question     string
	options      [4]string
	answerLetter string
	explanation  string
	difficulty   string
}

type seedTopic struct {
	slug        string
	title       string
	description string
	contentMD   string
	category    string
	difficulty  string
	tags        []string
	quizzes     []seedQuiz
}

// Run inserts seed users, topics and quizzes. It is idempotent: users are
// skipped when present and topics/quizzes are upserted by stable ids.
func Run(ctx context.Context, db *sql.DB, store *content.SQLStore) error {
	if err := seedUser(ctx, db, "admin", "admin@rights360.org", "admin1234", "admin"); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := seedUser(ctx, db, "demo", "demo@rights360.org", "demo1234", "user"); err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	for _, t := range topics() {
		topicID := "topic-" + t.slug
		err := store.PutTopic(ctx, content.Topic{
			ID:          topicID,
			Title:       t.title,
			Slug:        t.slug,
			Description: t.description,
			Content:     t.contentMD,
			Category:    t.category,
			Difficulty:  t.difficulty,
			Tags:        t.tags,
			Published:   true,
		})
		if err != nil {
			return fmt.Errorf("seed topic %s: %w", t.slug, err)
		}
		for i, q := range t.quizzes {
			idx, err := content.LetterToIndex(q.answerLetter, len(q.options))
			if err != nil {
				return fmt.Errorf("seed quiz %s/%d: %w", t.slug, i, err)
			}
			if q.difficulty == "" {
				q.difficulty = "easy"
			}
			err = store.PutQuiz(ctx, content.Quiz{
				ID:          fmt.Sprintf("%s-q%d", topicID, i+1),
				TopicID:     topicID,
				Question:    q.question,
				Options:     q.options[:],
				AnswerIndex: idx,
				Explanation: q.explanation,
				Difficulty:  q.difficulty,
			})
			if err != nil {
				return fmt.Errorf("seed quiz %s/%d: %w", t.slug, i, err)
			}
		}
	}
	return nil
}

func seedUser(ctx context.Context, db *sql.DB, username, email, password, role string) error {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, username).Scan(&one)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO users (id,username,email,password_hash,role,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`, uuid.NewString(), username, email, string(hash), role, time.Now().Unix())
	return err
}

func topics() []seedTopic {
	return []seedTopic{
		{
			slug:        "fundamental-rights",
			title:       "Fundamental Rights",
			description: "Learn about the basic rights guaranteed to all citizens under the Constitution.",
			category:    "Constitutional Law",
			difficulty:  "beginner",
			tags:        []string{"constitution", "rights", "equality"},
			contentMD: `# Fundamental Rights

Fundamental rights are a group of rights that enjoy a high degree of protection from encroachment and are specifically identified in the Constitution.

- **Right to Equality (Articles 14-18)**: equality before law, no discrimination on grounds of religion, race, caste, sex or place of birth.
- **Right to Freedom (Articles 19-22)**: speech and expression, peaceful assembly, association, movement, residence, profession.
- **Right against Exploitation (Articles 23-24)**: prohibition of human trafficking, forced labor and child labor in factories.
- **Right to Freedom of Religion (Articles 25-28)**: freedom of conscience and free profession, practice and propagation of religion.
- **Cultural and Educational Rights (Articles 29-30)**: protection of minority interests and minority educational institutions.
- **Right to Constitutional Remedies (Article 32)**: the right to move the Supreme Court for enforcement of fundamental rights.

These rights are not absolute: reasonable restrictions can be imposed in the interest of sovereignty, security, public order, decency or morality.`,
			quizzes: []seedQuiz{
				{
					question:     "Which article guarantees equality before law?",
					options:      [4]string{"Article 12", "Article 14", "Article 19", "Article 21"},
					answerLetter: "B",
					explanation:  "Article 14 guarantees equality before law and equal protection of the laws.",
				},
				{
					question:     "What does Article 19 guarantee?",
					options:      [4]string{"Right to Life", "Right to Education", "Freedom of Speech", "Right to Property"},
					answerLetter: "C",
					explanation:  "Article 19 protects the freedoms of speech, assembly, association, movement, residence and profession.",
				},
				{
					question:     "Which articles deal with Right against Exploitation?",
					options:      [4]string{"Articles 14-18", "Articles 19-22", "Articles 23-24", "Articles 25-28"},
					answerLetter: "C",
				},
				{
					question:     "Which article provides the Right to Constitutional Remedies?",
					options:      [4]string{"Article 32", "Article 21", "Article 14", "Article 19"},
					answerLetter: "A",
					explanation:  "Article 32 lets citizens move the Supreme Court directly to enforce fundamental rights.",
				},
				{
					question:     "Are fundamental rights absolute?",
					options:      [4]string{"Yes, they cannot be restricted", "No, reasonable restrictions can be imposed", "Only for government officials", "Only during emergencies"},
					answerLetter: "B",
					difficulty:   "medium",
				},
			},
		},
		{
			slug:        "consumer-rights",
			title:       "Consumer Rights and Protection",
			description: "Know your rights when buying goods and services, and how to seek redress.",
			category:    "Consumer Law",
			difficulty:  "beginner",
			tags:        []string{"consumer", "protection", "redress"},
			contentMD: `# Consumer Rights and Protection

Consumer protection law recognizes six fundamental rights: safety, information, choice, being heard, redress, and consumer education.

Complaints about defective goods or deficient services go to consumer commissions tiered by claim value; keep bills and written communication as evidence. Complaints must normally be filed within two years of the cause of action.`,
			quizzes: []seedQuiz{
				{
					question:     "How many fundamental consumer rights are there?",
					options:      [4]string{"Four", "Five", "Six", "Eight"},
					answerLetter: "C",
				},
				{
					question:     "Which consumer right protects you from hazardous products?",
					options:      [4]string{"Right to Choose", "Right to Safety", "Right to be Heard", "Right to Redress"},
					answerLetter: "B",
					explanation:  "The right to safety protects consumers against goods hazardous to life and property.",
				},
				{
					question:     "What is the maximum time limit for filing a consumer complaint?",
					options:      [4]string{"Six months", "One year", "Two years", "Five years"},
					answerLetter: "C",
					difficulty:   "medium",
				},
				{
					question:     "Which right ensures you can choose from different brands?",
					options:      [4]string{"Right to Information", "Right to Choose", "Right to Safety", "Right to Education"},
					answerLetter: "B",
				},
			},
		},
		{
			slug:        "labor-rights",
			title:       "Labor Rights and Workers' Protection",
			description: "Working hours, wages, social security and the right to organize.",
			category:    "Labor Law",
			difficulty:  "intermediate",
			tags:        []string{"labor", "wages", "unions"},
			contentMD: `# Labor Rights and Workers' Protection

Core protections cover maximum working hours (9 per day, 48 per week under the Factories Act), minimum wages, provident fund contributions, medical and sickness benefits, and the right to form trade unions and bargain collectively.`,
			quizzes: []seedQuiz{
				{
					question:     "What is the maximum working hours per day under the Factories Act?",
					options:      [4]string{"8 hours", "9 hours", "10 hours", "12 hours"},
					answerLetter: "B",
				},
				{
					question:     "What is the maximum working hours per week?",
					options:      [4]string{"40 hours", "44 hours", "48 hours", "52 hours"},
					answerLetter: "C",
				},
				{
					question:     "Workers have the right to form what?",
					options:      [4]string{"Political parties", "Trade unions", "Private companies", "Cooperative banks"},
					answerLetter: "B",
					explanation:  "The right to organize lets workers form trade unions and bargain collectively.",
				},
			},
		},
		{
			slug:        "right-to-information",
			title:       "Right to Information (RTI)",
			description: "How to ask public authorities for information and what to expect.",
			category:    "Administrative Law",
			difficulty:  "intermediate",
			tags:        []string{"rti", "transparency", "government"},
			contentMD: `# Right to Information (RTI)

Any citizen can request information from a public authority for a nominal fee. The authority must reply within 30 days, or within 48 hours where life and liberty are involved. Willful delay attracts a penalty on the officer responsible.`,
			quizzes: []seedQuiz{
				{
					question:     "Within how many days should information be provided under RTI?",
					options:      [4]string{"15 days", "30 days", "45 days", "60 days"},
					answerLetter: "B",
				},
				{
					question:     "For life and liberty cases, information must be provided within?",
					options:      [4]string{"24 hours", "48 hours", "72 hours", "One week"},
					answerLetter: "B",
					difficulty:   "medium",
				},
				{
					question:     "Who can file an RTI application?",
					options:      [4]string{"Only lawyers", "Only journalists", "Any citizen", "Only government employees"},
					answerLetter: "C",
				},
			},
		},
		{
			slug:        "womens-rights",
			title:       "Women's Rights and Gender Equality",
			description: "Protections at the workplace, at home and under the Constitution.",
			category:    "Constitutional Law",
			difficulty:  "beginner",
			tags:        []string{"gender", "equality", "workplace"},
			contentMD: `# Women's Rights and Gender Equality

Key protections include 26 weeks of paid maternity leave, the Protection of Women from Domestic Violence Act, mandatory internal complaints committees at every workplace under the Sexual Harassment Act, and Article 15(3), which permits special provisions for women and children.`,
			quizzes: []seedQuiz{
				{
					question:     "How many weeks of paid maternity leave are women entitled to?",
					options:      [4]string{"12 weeks", "16 weeks", "26 weeks", "52 weeks"},
					answerLetter: "C",
				},
				{
					question:     "What is mandatory in every workplace under the Sexual Harassment Act?",
					options:      [4]string{"A creche", "An internal complaints committee", "A women's quota", "A legal advisor"},
					answerLetter: "B",
					difficulty:   "medium",
				},
			},
		},
		{
			slug:        "right-to-life",
			title:       "Right to Life and Personal Liberty",
			description: "Understand your right to life, liberty, and protection from arbitrary detention.",
			category:    "Constitutional Law",
			difficulty:  "intermediate",
			tags:        []string{"article-21", "liberty", "detention"},
			contentMD: `# Right to Life and Personal Liberty

Article 21 guarantees that no person shall be deprived of life or personal liberty except according to a procedure established by law, and courts have read that procedure to mean one that is fair and reasonable. The right has been held to include livelihood, dignity and privacy. A detained person must be produced before a magistrate within 24 hours.`,
			quizzes: []seedQuiz{
				{
					question:     "Which article guarantees the right to life and personal liberty?",
					options:      [4]string{"Article 19", "Article 20", "Article 21", "Article 22"},
					answerLetter: "C",
				},
				{
					question:     "What is the maximum time a person can be detained without being produced before a magistrate?",
					options:      [4]string{"12 hours", "24 hours", "48 hours", "72 hours"},
					answerLetter: "B",
					explanation:  "Article 22 requires production before a magistrate within 24 hours of arrest.",
					difficulty:   "medium",
				},
				{
					question:     "Right to livelihood is part of which fundamental right?",
					options:      [4]string{"Right to Equality", "Right to Freedom of Religion", "Right to Life", "Right against Exploitation"},
					answerLetter: "C",
				},
			},
		},
	}
}
