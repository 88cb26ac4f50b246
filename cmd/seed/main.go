// seed inserts the Bangladeshi MFI catalog and development logins for local testing.
// Idempotent: skips all inserts if the dev borrower (borrower@example.com) already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"grameengo/backend/internal/config"
	"grameengo/backend/internal/db"
	mfidomain "grameengo/backend/internal/mfi/domain"
	mfirepo "grameengo/backend/internal/mfi/repository"
	"grameengo/backend/internal/security"
	userdomain "grameengo/backend/internal/user/domain"
	userrepo "grameengo/backend/internal/user/repository"
)

const (
	devPassword   = "password123"
	borrowerEmail = "borrower@example.com"
	officerEmail  = "officer@example.com"
	adminEmail    = "admin@example.com"
)

// mfiSeed mirrors the production catalog of Bangladeshi microfinance institutions.
type mfiSeed struct {
	name         string
	description  string
	minLoan      float64
	maxLoan      float64
	interestRate float64
	processing   int
	requirements []string
	collateral   bool
	website      string
	email        string
	phone        string
	logoText     string
	logoColor    string
}

var mfiSeeds = []mfiSeed{
	{
		name:         "Grameen Bank",
		description:  "Pioneer of microfinance in Bangladesh, empowering rural communities since 1983.",
		minLoan:      5000, maxLoan: 500000, interestRate: 20.0, processing: 7,
		requirements: []string{"National ID", "Business Registration", "Bank Statement"},
		website:      "https://grameen-bank.org", email: "info@grameen-bank.org",
		phone:        "+880-2-9004534", logoText: "Grameen", logoColor: "1E9A56",
	},
	{
		name:         "BRAC",
		description:  "One of the world's largest NGOs, providing microfinance and development services.",
		minLoan:      10000, maxLoan: 1000000, interestRate: 18.5, processing: 5,
		requirements: []string{"National ID", "Trade License", "Business Plan"},
		website:      "https://www.brac.net", email: "microfinance@brac.net",
		phone:        "+880-2-9881265", logoText: "BRAC", logoColor: "2C5F2D",
	},
	{
		name:         "ASA",
		description:  "Association for Social Advancement - Serving millions with microfinance solutions.",
		minLoan:      8000, maxLoan: 750000, interestRate: 19.0, processing: 10,
		requirements: []string{"National ID", "Business Registration"},
		website:      "https://www.asa.org.bd", email: "info@asa.org.bd",
		phone:        "+880-2-8837614", logoText: "ASA", logoColor: "00529B",
	},
	{
		name:         "BURO Bangladesh",
		description:  "Providing innovative financial services to rural and urban entrepreneurs.",
		minLoan:      5000, maxLoan: 500000, interestRate: 21.0, processing: 12,
		requirements: []string{"National ID", "Business Proof"},
		website:      "https://www.buro-bd.org", email: "info@buro-bd.org",
		phone:        "+880-2-9889534", logoText: "BURO", logoColor: "FF6B35",
	},
	{
		name:         "Sajida Foundation",
		description:  "Committed to poverty alleviation through sustainable microfinance programs.",
		minLoan:      10000, maxLoan: 800000, interestRate: 17.5, processing: 8,
		requirements: []string{"National ID", "Business Registration", "Bank Statement"},
		website:      "https://www.sajidafoundation.org", email: "info@sajidafoundation.org",
		phone:        "+880-2-9853421", logoText: "Sajida", logoColor: "4A90E2",
	},
	{
		name:         "Shakti Foundation",
		description:  "Empowering women entrepreneurs with accessible microfinance solutions.",
		minLoan:      7000, maxLoan: 600000, interestRate: 19.5, processing: 9,
		requirements: []string{"National ID", "Business Plan"},
		website:      "https://www.shaktifoundation.org.bd", email: "info@shaktifoundation.org.bd",
		phone:        "+880-2-9834567", logoText: "Shakti", logoColor: "E94B3C",
	},
	{
		name:         "TMSS",
		description:  "Thengamara Mohila Sabuj Sangha - Supporting sustainable livelihoods.",
		minLoan:      6000, maxLoan: 450000, interestRate: 20.5, processing: 11,
		requirements: []string{"National ID", "Business Registration"},
		website:      "https://www.tmss-bd.org", email: "info@tmss-bd.org",
		phone:        "+880-2-9867234", logoText: "TMSS", logoColor: "27AE60",
	},
	{
		name:         "Jagorani Chakra Foundation",
		description:  "Rural development organization focused on sustainable microfinance.",
		minLoan:      8000, maxLoan: 700000, interestRate: 18.0, processing: 10,
		requirements: []string{"National ID", "Trade License"},
		website:      "https://www.jagorani.org", email: "info@jagorani.org",
		phone:        "+880-2-9876543", logoText: "JCF", logoColor: "8E44AD",
	},
	{
		name:         "Uddipan",
		description:  "Promoting social and economic development through microfinance.",
		minLoan:      5000, maxLoan: 400000, interestRate: 21.5, processing: 14,
		requirements: []string{"National ID", "Business Proof"},
		website:      "https://www.uddipan.org", email: "info@uddipan.org",
		phone:        "+880-2-9834512", logoText: "Uddipan", logoColor: "F39C12",
	},
	{
		name:         "Palli Karma-Sahayak Foundation (PKSF)",
		description:  "Apex funding organization for microfinance in Bangladesh.",
		minLoan:      15000, maxLoan: 1500000, interestRate: 16.5, processing: 6,
		requirements: []string{"National ID", "Business Registration", "Detailed Business Plan", "Bank Statement"},
		collateral:   true,
		website:      "https://www.pksf.gov.bd", email: "info@pksf.gov.bd",
		phone:        "+880-2-9144200", logoText: "PKSF", logoColor: "16A085",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)

	existing, err := users.GetByEmail(ctx, borrowerEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (borrower@example.com exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash(devPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	devUsers := []*userdomain.User{
		{ID: uuid.NewString(), Email: borrowerEmail, Name: "Dev Borrower", PasswordHash: passwordHash, Role: userdomain.RoleBorrower, CreatedAt: now},
		{ID: uuid.NewString(), Email: officerEmail, Name: "Dev Officer", PasswordHash: passwordHash, Role: userdomain.RoleOfficer, CreatedAt: now},
		{ID: uuid.NewString(), Email: adminEmail, Name: "Dev Admin", PasswordHash: passwordHash, Role: userdomain.RoleAdmin, CreatedAt: now},
	}
	for _, u := range devUsers {
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("create user %s: %v", u.Email, err)
		}
	}

	mfis := mfirepo.NewPostgresRepository(conn)
	products := mfirepo.NewPostgresProductRepository(conn)

	for _, s := range mfiSeeds {
		mfi := &mfidomain.MFI{
			ID:                 uuid.NewString(),
			Name:               s.name,
			Description:        s.description,
			MinLoanAmount:      s.minLoan,
			MaxLoanAmount:      s.maxLoan,
			InterestRate:       s.interestRate,
			ProcessingTimeDays: s.processing,
			Requirements:       s.requirements,
			CollateralRequired: s.collateral,
			Website:            s.website,
			ContactEmail:       s.email,
			ContactPhone:       s.phone,
			LogoURL:            logoURL(s.logoColor, s.logoText),
			CreatedAt:          now,
		}
		if err := mfis.Create(ctx, mfi); err != nil {
			log.Fatalf("create MFI %s: %v", s.name, err)
		}
		for _, p := range productsFor(mfi) {
			if err := products.Create(ctx, p); err != nil {
				log.Fatalf("create product %s for %s: %v", p.Name, s.name, err)
			}
		}
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Borrower login: %s / %s\n", borrowerEmail, devPassword)
	fmt.Printf("Officer login:  %s / %s\n", officerEmail, devPassword)
	fmt.Printf("Admin login:    %s / %s\n", adminEmail, devPassword)
}

// productsFor builds the two standard offerings each MFI carries: a micro
// business loan capped at 200k and an SME growth loan at a 1-point discount.
func productsFor(mfi *mfidomain.MFI) []*mfidomain.LoanProduct {
	microMax := mfi.MaxLoanAmount
	if microMax > 200000 {
		microMax = 200000
	}
	now := time.Now().UTC()
	return []*mfidomain.LoanProduct{
		{
			ID:                  uuid.NewString(),
			MFIID:               mfi.ID,
			Name:                "Micro Business Loan",
			Description:         "Small loans for starting or expanding micro businesses",
			MinAmount:           mfi.MinLoanAmount,
			MaxAmount:           microMax,
			InterestRate:        mfi.InterestRate,
			TenureMonths:        []int{6, 12, 18},
			EligibilityCriteria: []string{"Must be 18+ years old", "Business operational for 6 months"},
			CreatedAt:           now,
		},
		{
			ID:                  uuid.NewString(),
			MFIID:               mfi.ID,
			Name:                "SME Growth Loan",
			Description:         "Larger loans for established small and medium enterprises",
			MinAmount:           100000,
			MaxAmount:           mfi.MaxLoanAmount,
			InterestRate:        mfi.InterestRate - 1,
			TenureMonths:        []int{12, 24, 36},
			EligibilityCriteria: []string{"Business operational for 1+ year", "Annual revenue > BDT 500,000"},
			CreatedAt:           now,
		},
	}
}

func logoURL(color, text string) string {
	return "https://via.placeholder.com/150/" + color + "/FFFFFF?text=" + text
}
