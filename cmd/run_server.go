package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/webmarks/webmarks-service/global"
	internalApp "github.com/webmarks/webmarks-service/internal/app"
	"github.com/webmarks/webmarks-service/internal/dao"
	"github.com/webmarks/webmarks-service/internal/routers"
	"github.com/webmarks/webmarks-service/internal/task"
	"github.com/webmarks/webmarks-service/internal/upgrade"
	"github.com/webmarks/webmarks-service/pkg/logger"
	"github.com/webmarks/webmarks-service/pkg/safeclose"
	"github.com/webmarks/webmarks-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultSecretKeys lists keys that must not survive into production
var defaultSecretKeys = []string{
	"webmarks-Auth-Token",
	"",
}

type Server struct {
	logger            *zap.Logger
	config            *internalApp.AppConfig
	db                *gorm.DB
	ut                *ut.UniversalTranslator
	httpServer        *http.Server
	privateHttpServer *http.Server
	sc                *safeclose.SafeClose
	app               *internalApp.App
}

// GetApp returns the app container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

func checkSecurityConfigWithConfig(cfg *internalApp.AppConfig, lg *zap.Logger) {
	for _, key := range defaultSecretKeys {
		if cfg.Security.AuthTokenKey == key {
			lg.Warn("using default secret key - please change security.auth-token-key in config.yaml")
			return
		}
	}
}

func NewServer(runEnv *runFlags) (*Server, error) {

	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	runMode := runEnv.runMode
	if len(runMode) <= 0 {
		runMode = appConfig.Server.RunMode
	}
	if len(runMode) > 0 {
		gin.SetMode(runMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if len(runEnv.port) > 0 {
		appConfig.Server.HttpPort = runEnv.port
	}

	s := &Server{
		config: appConfig,
		sc:     safeclose.New(),
	}

	lg, err := logger.NewLogger(logger.Config{
		Level:      appConfig.Log.Level,
		File:       appConfig.Log.File,
		Production: appConfig.Log.Production,
	})
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}
	s.logger = lg
	global.Logger = lg

	checkSecurityConfigWithConfig(appConfig, s.logger)

	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:            appConfig.Database.Type,
		Path:            appConfig.Database.Path,
		UserName:        appConfig.Database.UserName,
		Password:        appConfig.Database.Password,
		Host:            appConfig.Database.Host,
		Name:            appConfig.Database.Name,
		TablePrefix:     appConfig.Database.TablePrefix,
		AutoMigrate:     appConfig.Database.AutoMigrate,
		Charset:         appConfig.Database.Charset,
		ParseTime:       appConfig.Database.ParseTime,
		MaxIdleConns:    appConfig.Database.MaxIdleConns,
		MaxOpenConns:    appConfig.Database.MaxOpenConns,
		ConnMaxLifetime: appConfig.Database.ConnMaxLifetime,
		ConnMaxIdleTime: appConfig.Database.ConnMaxIdleTime,
		Replicas:        appConfig.Database.Replicas,
		RunMode:         appConfig.Server.RunMode,
	}, s.logger)
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}
	s.db = db
	global.DBEngine = db

	app, err := internalApp.NewApp(appConfig, s.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	if err := upgrade.Execute(); err != nil {
		return nil, fmt.Errorf("upgrade.Execute: %w", err)
	}

	uni, err := initValidatorWithLogger(s.logger)
	if err != nil {
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	initScheduler(s)

	s.logger.Warn(fmt.Sprintf("%s v%s Git:%s BuildTime:%s", global.Name, global.Version, global.GitTag, global.BuildTime))
	s.logger.Warn("config loaded", zap.String("path", configRealpath))

	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", httpAddr))
		s.httpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewRouter(s.app, s.ut),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
			defer done()
			errChan := make(chan error, 1)
			go func() {
				errChan <- s.httpServer.ListenAndServe()
			}()
			select {
			case err := <-errChan:
				s.logger.Error("api service err", zap.Error(err))
				s.sc.SendCloseSignal(err)
			case <-closeSignal:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := s.httpServer.Shutdown(ctx); err != nil {
					s.logger.Error("api service shutdown error", zap.Error(err))
				}
			}
		})
	}

	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.PrivateHttpListen", httpAddr))
		s.privateHttpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewPrivateRouter(appConfig.Server.RunMode, s.logger),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
			defer done()
			errChan := make(chan error, 1)
			go func() {
				errChan <- s.privateHttpServer.ListenAndServe()
			}()
			select {
			case err := <-errChan:
				s.logger.Error("private api service err", zap.Error(err))
				s.sc.SendCloseSignal(err)
			case <-closeSignal:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := s.privateHttpServer.Shutdown(ctx); err != nil {
					s.logger.Error("private api service shutdown error", zap.Error(err))
				}
			}
		})
	}

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		if s.app != nil {
			s.app.Shutdown()
			s.logger.Info("app container shutdown gracefully")
		}
	})

	return s, nil
}

func initScheduler(s *Server) {
	manager := task.NewManager(s.app, s.logger, s.sc)
	if err := manager.RegisterTasks(); err != nil {
		s.logger.Error("failed to register tasks", zap.Error(err))
		return
	}
	manager.Start()
}

// initValidatorWithLogger installs the custom validator on gin and builds
// the translator set used for validation messages
func initValidatorWithLogger(lg *zap.Logger) (*ut.UniversalTranslator, error) {
	customValidator := validator.NewCustomValidator()
	customValidator.Engine()
	binding.Validator = customValidator

	validator.RegisterTagNameJSON()

	enLocale := en.New()
	zhLocale := zh.New()
	uni := ut.New(enLocale, enLocale, zhLocale)

	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if !ok {
		return uni, nil
	}

	if trans, found := uni.GetTranslator("en"); found {
		if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
			lg.Warn("register en translations failed", zap.Error(err))
		}
	}
	if trans, found := uni.GetTranslator("zh"); found {
		if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
			lg.Warn("register zh translations failed", zap.Error(err))
		}
	}

	return uni, nil
}
