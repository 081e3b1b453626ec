package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"meeting_web/internal/api"
	"meeting_web/internal/models"
	"meeting_web/internal/provider"
	"meeting_web/internal/repository"
	"meeting_web/internal/service"
	"meeting_web/internal/storage"
	"meeting_web/internal/utils"
	"meeting_web/pkg/config"
)

func main() {
	// 로컬 개발용 .env 가 있으면 먼저 읽는다. 없어도 무방하다.
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.InitJWT(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomMember{},
		&models.Vote{},
		&models.Match{},
		&models.MatchRating{},
		&models.ChatMessage{},
	); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	rdb, err := storage.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	defer rdb.Close()

	// 외부 제공자 어댑터 구성
	kakaoClient := provider.NewKakaoClient(cfg.Kakao.RESTKey, cfg.Kakao.ClientSecret, cfg.Kakao.RedirectURI)

	var verifier provider.SMSVerifier
	switch cfg.SMS.Provider {
	case "twilio":
		verifier = provider.NewTwilioVerifier(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.VerifyServiceSID)
	default:
		verifier = provider.NewLocalVerifier(rdb,
			time.Duration(cfg.SMS.CodeTTLSeconds)*time.Second,
			time.Duration(cfg.SMS.CooldownSeconds)*time.Second)
	}

	repos := repository.NewRepositories(db)

	services := service.NewServices(repos, service.Options{
		Kakao:     kakaoClient,
		Verifier:  verifier,
		DeckLimit: cfg.Matching.DailyRecommendations,
	})

	r := gin.Default()
	api.SetupRoutes(r, services)

	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
