package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusboard/backend/internal/middleware"
	"github.com/campusboard/backend/pkg/prometheus"
	"github.com/campusboard/backend/pkg/router"
	"github.com/campusboard/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadDatabase()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadScyllaDB()
	s.loadStorage()
	s.loadEmailSender()
	s.loadSearchIndex()
	s.loadRepos()
	s.reindexSearch()
	s.loadBadgeManager()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)
	httpSrv := &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.loadRouter().Handler(cfg.ApiServer.ServerConfigs),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	return serve(s.ctx, httpSrv)
}

func (s *srv) loadRouter() *router.Router {
	defaultRouter := router.New(s.ctx)
	defaultRouter.Static("/metrics", prometheus.NewHandler())
	defaultRouter.Before(middleware.WithStartTime(), middleware.Identify())
	defaultRouter.AddCloser(middleware.Logger(), middleware.Prometheus())

	// Auth API
	authRouter := defaultRouter.Branch()
	authRouter.After(middleware.HandleSetAccessToken(), middleware.HandleSaveSession())
	{
		router.POST(authRouter, "/register", s.authDomain.Register)
		router.GET(authRouter, "/verifyEmail", s.authDomain.VerifyEmail)
		router.POST(authRouter, "/resendVerification", s.authDomain.ResendVerification)
		router.POST(authRouter, "/login", s.authDomain.Login)
	}

	// Deleting the account also drops the access token cookie.
	accountRouter := defaultRouter.Branch()
	accountRouter.Before(middleware.Authenticate())
	accountRouter.After(middleware.HandleSetAccessToken())
	{
		router.POST(accountRouter, "/deleteAccount", s.userDomain.DeleteAccount)
	}

	// These following APIs need authentication.
	authenticatedRouter := defaultRouter.Branch()
	authenticatedRouter.Before(middleware.Authenticate())
	{
		// User API
		router.GET(authenticatedRouter, "/getMe", s.userDomain.GetMe)
		router.GET(authenticatedRouter, "/getUser", s.userDomain.GetUser)
		router.POST(authenticatedRouter, "/updateProfile", s.userDomain.UpdateProfile)
		router.POST(authenticatedRouter, "/uploadAvatar", s.userDomain.UploadAvatar)

		// Follow API
		router.POST(authenticatedRouter, "/follow", s.followDomain.Follow)
		router.POST(authenticatedRouter, "/unfollow", s.followDomain.Unfollow)
		router.GET(authenticatedRouter, "/getFollowers", s.followDomain.GetFollowers)
		router.GET(authenticatedRouter, "/getFollowing", s.followDomain.GetFollowing)

		// Board API
		router.POST(authenticatedRouter, "/createBoard", s.boardDomain.Create)
		router.GET(authenticatedRouter, "/getBoard", s.boardDomain.Get)
		router.GET(authenticatedRouter, "/getBoards", s.boardDomain.GetList)
		router.POST(authenticatedRouter, "/selectBestAnswer", s.boardDomain.SelectBestAnswer)

		// Post API
		router.POST(authenticatedRouter, "/createPost", s.postDomain.Create)
		router.POST(authenticatedRouter, "/thankPost", s.postDomain.Thank)
		router.GET(authenticatedRouter, "/getPosts", s.postDomain.GetList)

		// Circle API
		router.POST(authenticatedRouter, "/createCircle", s.circleDomain.Create)
		router.GET(authenticatedRouter, "/getCircle", s.circleDomain.Get)
		router.GET(authenticatedRouter, "/getCircles", s.circleDomain.GetList)
		router.POST(authenticatedRouter, "/joinCircle", s.circleDomain.Join)
		router.POST(authenticatedRouter, "/leaveCircle", s.circleDomain.Leave)
		router.POST(authenticatedRouter, "/askQuestion", s.circleDomain.AskQuestion)

		// Chat API
		router.POST(authenticatedRouter, "/getOrCreateChat", s.chatDomain.GetOrCreate)
		router.GET(authenticatedRouter, "/getChats", s.chatDomain.GetList)
		router.POST(authenticatedRouter, "/sendMessage", s.chatDomain.SendMessage)
		router.GET(authenticatedRouter, "/getMessages", s.chatDomain.GetMessages)
		router.POST(authenticatedRouter, "/markChatRead", s.chatDomain.MarkRead)

		// Notification API
		router.GET(authenticatedRouter, "/getNotifications", s.notificationDomain.GetList)
		router.POST(authenticatedRouter, "/markNotificationRead", s.notificationDomain.MarkRead)
		router.POST(authenticatedRouter, "/markAllNotificationsRead", s.notificationDomain.MarkAllRead)

		// Feedback API
		router.POST(authenticatedRouter, "/submitFeedback", s.feedbackDomain.Submit)

		// Image API
		router.POST(authenticatedRouter, "/uploadImage", s.fileDomain.UploadImage)

		// Point API
		router.GET(authenticatedRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
		router.GET(authenticatedRouter, "/getPointHistory", s.pointDomain.GetHistory)
		router.GET(authenticatedRouter, "/getBadges", s.pointDomain.GetBadges)

		// Search API
		router.GET(authenticatedRouter, "/search", s.searchDomain.Search)
	}

	return defaultRouter
}

// serve runs httpSrv until it fails or the process receives SIGINT/SIGTERM,
// then drains in-flight requests.
func serve(ctx context.Context, httpSrv *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil

	case <-ctx.Done():
	}

	xcontext.Logger(ctx).Infof("Shutting down server on %s", httpSrv.Addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpSrv.Shutdown(shutdownCtx)
}
