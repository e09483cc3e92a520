package ioc

import (
	"context"
	"log/slog"
	"os"
	"time"

	// env
	"github.com/joho/godotenv"

	// mongodb driver
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	// container
	container "github.com/golobby/container/v3"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"

	"github.com/survivor-pool/survivor-pool/pkg/domain/authn"

	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	pool_usecases "github.com/survivor-pool/survivor-pool/pkg/domain/pool/usecases"

	season_out "github.com/survivor-pool/survivor-pool/pkg/domain/season/ports/out"

	user_out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
	user_usecases "github.com/survivor-pool/survivor-pool/pkg/domain/user/usecases"

	email_adapter "github.com/survivor-pool/survivor-pool/pkg/infra/adapters/email"
	crypto_adapter "github.com/survivor-pool/survivor-pool/pkg/infra/crypto"
	mongodb "github.com/survivor-pool/survivor-pool/pkg/infra/db/mongodb"
)

type ContainerBuilder struct {
	Container container.Container
}

func NewContainerBuilder() *ContainerBuilder {
	c := container.New()

	b := &ContainerBuilder{c}

	if err := c.Singleton(func() container.Container { return b.Container }); err != nil {
		slog.Error("failed to register container.Container in NewContainerBuilder")
		panic(err)
	}

	if err := c.Singleton(func() *ContainerBuilder { return b }); err != nil {
		slog.Error("failed to register *ContainerBuilder in NewContainerBuilder")
		panic(err)
	}

	return b
}

func (b *ContainerBuilder) Build() container.Container {
	return b.Container
}

func (b *ContainerBuilder) WithEnvFile() *ContainerBuilder {
	if os.Getenv("DEV_ENV") == "true" {
		if err := godotenv.Load(); err != nil {
			slog.Warn("no .env file loaded", "err", err)
		}
	}

	if err := b.Container.Singleton(func() (common.Config, error) {
		return EnvironmentConfig()
	}); err != nil {
		slog.Error("failed to load EnvironmentConfig")
		panic(err)
	}

	return b
}

func (b *ContainerBuilder) With(resolver interface{}) *ContainerBuilder {
	if err := b.Container.Singleton(resolver); err != nil {
		slog.Error("failed to register resolver", "err", err)
		panic(err)
	}
	return b
}

// InjectMongoDB wires the mongo.Client and every concrete repository behind
// its ports/out interface.
func InjectMongoDB(c container.Container) error {
	if err := c.Singleton(func() (*mongo.Client, error) {
		var config common.Config
		if err := c.Resolve(&config); err != nil {
			slog.Error("failed to resolve config for mongo.Client", "err", err)
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.MongoDB.URI))
		if err != nil {
			slog.Error("failed to connect to MongoDB", "err", err)
			return nil, err
		}
		return client, nil
	}); err != nil {
		slog.Error("failed to register mongo.Client")
		return err
	}

	if err := c.Singleton(func() (user_out.UserRepository, error) {
		var client *mongo.Client
		var config common.Config
		if err := c.Resolve(&client); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return mongodb.NewUserRepository(client, config.MongoDB.DBName), nil
	}); err != nil {
		slog.Error("failed to register UserRepository")
		panic(err)
	}

	if err := c.Singleton(func() (pool_out.PoolRepository, error) {
		var client *mongo.Client
		var config common.Config
		if err := c.Resolve(&client); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return mongodb.NewPoolRepository(client, config.MongoDB.DBName), nil
	}); err != nil {
		slog.Error("failed to register PoolRepository")
		panic(err)
	}

	if err := c.Singleton(func() (pool_out.MembershipRepository, error) {
		var client *mongo.Client
		var config common.Config
		if err := c.Resolve(&client); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return mongodb.NewMembershipRepository(client, config.MongoDB.DBName), nil
	}); err != nil {
		slog.Error("failed to register MembershipRepository")
		panic(err)
	}

	if err := c.Singleton(func() (pool_out.PickRepository, error) {
		var client *mongo.Client
		var config common.Config
		if err := c.Resolve(&client); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return mongodb.NewPickRepository(client, config.MongoDB.DBName), nil
	}); err != nil {
		slog.Error("failed to register PickRepository")
		panic(err)
	}

	if err := c.Singleton(func() (season_out.SeasonRepository, error) {
		var client *mongo.Client
		var config common.Config
		if err := c.Resolve(&client); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return mongodb.NewSeasonRepository(client, config.MongoDB.DBName), nil
	}); err != nil {
		slog.Error("failed to register SeasonRepository")
		panic(err)
	}

	return nil
}

// WithAdapters wires the crypto and email adapters behind their ports.
func (b *ContainerBuilder) WithAdapters() *ContainerBuilder {
	c := b.Container

	if err := c.Singleton(func() (user_out.PasswordHasher, error) {
		return crypto_adapter.NewBcryptPasswordHasherAdapter(BcryptCost()), nil
	}); err != nil {
		slog.Error("failed to register PasswordHasher")
		panic(err)
	}

	if err := c.Singleton(func() (authn.CredentialCodec, error) {
		var config common.Config
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return crypto_adapter.NewJWTCredentialCodec(config.Auth.JWTSecretKey, config.Auth.TokenTTL, config.Auth.RefreshInterval), nil
	}); err != nil {
		slog.Error("failed to register CredentialCodec")
		panic(err)
	}

	if err := c.Singleton(func() (user_out.EmailSender, error) {
		var config common.Config
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		if config.Email.ResendAPIKey == "" {
			return email_adapter.NewNoopEmailSender(), nil
		}
		return email_adapter.NewResendEmailSender(config.Email.ResendAPIKey, config.Email.FromAddress, os.Getenv("APP_URL")), nil
	}); err != nil {
		slog.Error("failed to register EmailSender")
		panic(err)
	}

	return b
}

// WithUseCases wires every usecase struct from its port dependencies.
func (b *ContainerBuilder) WithUseCases() *ContainerBuilder {
	c := b.Container

	if err := c.Singleton(func() (*authn.Gate, error) {
		var codec authn.CredentialCodec
		var users user_out.UserRepository
		if err := c.Resolve(&codec); err != nil {
			return nil, err
		}
		if err := c.Resolve(&users); err != nil {
			return nil, err
		}
		return authn.NewGate(codec, users), nil
	}); err != nil {
		slog.Error("failed to register authn.Gate")
		panic(err)
	}

	if err := c.Singleton(func() (*user_usecases.CreateUser, error) {
		var users user_out.UserRepository
		var hasher user_out.PasswordHasher
		var emails user_out.EmailSender
		c.Resolve(&users)
		c.Resolve(&hasher)
		c.Resolve(&emails)
		return &user_usecases.CreateUser{Users: users, Hasher: hasher, Emails: emails}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*user_usecases.LoginUser, error) {
		var users user_out.UserRepository
		var hasher user_out.PasswordHasher
		var codec authn.CredentialCodec
		c.Resolve(&users)
		c.Resolve(&hasher)
		c.Resolve(&codec)
		return &user_usecases.LoginUser{Users: users, Hasher: hasher, Codec: codec}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*user_usecases.UpdatePassword, error) {
		var users user_out.UserRepository
		var hasher user_out.PasswordHasher
		c.Resolve(&users)
		c.Resolve(&hasher)
		return &user_usecases.UpdatePassword{Users: users, Hasher: hasher}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*user_usecases.RequestPasswordReset, error) {
		var users user_out.UserRepository
		var emails user_out.EmailSender
		c.Resolve(&users)
		c.Resolve(&emails)
		return &user_usecases.RequestPasswordReset{Users: users, Emails: emails}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*user_usecases.CompletePasswordReset, error) {
		var users user_out.UserRepository
		var hasher user_out.PasswordHasher
		c.Resolve(&users)
		c.Resolve(&hasher)
		return &user_usecases.CompletePasswordReset{Users: users, Hasher: hasher}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*user_usecases.VerifyUserEmail, error) {
		var users user_out.UserRepository
		c.Resolve(&users)
		return &user_usecases.VerifyUserEmail{Users: users}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*user_usecases.UpdateDefaultPool, error) {
		var users user_out.UserRepository
		var memberships pool_out.MembershipRepository
		c.Resolve(&users)
		c.Resolve(&memberships)
		return &user_usecases.UpdateDefaultPool{Users: users, Memberships: memberships}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*user_usecases.ListUserPools, error) {
		var memberships pool_out.MembershipRepository
		var pools pool_out.PoolRepository
		c.Resolve(&memberships)
		c.Resolve(&pools)
		return &user_usecases.ListUserPools{Memberships: memberships, Pools: pools}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*user_usecases.SearchActiveUsers, error) {
		var users user_out.UserRepository
		var memberships pool_out.MembershipRepository
		c.Resolve(&users)
		c.Resolve(&memberships)
		return &user_usecases.SearchActiveUsers{Users: users, Memberships: memberships}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.DeletePool, error) {
		var pools pool_out.PoolRepository
		var memberships pool_out.MembershipRepository
		var picks pool_out.PickRepository
		var users user_out.UserRepository
		c.Resolve(&pools)
		c.Resolve(&memberships)
		c.Resolve(&picks)
		c.Resolve(&users)
		return &pool_usecases.DeletePool{Pools: pools, Memberships: memberships, Picks: picks, Users: users}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*user_usecases.DeleteUser, error) {
		var users user_out.UserRepository
		var memberships pool_out.MembershipRepository
		var picks pool_out.PickRepository
		var deletePool *pool_usecases.DeletePool
		c.Resolve(&users)
		c.Resolve(&memberships)
		c.Resolve(&picks)
		c.Resolve(&deletePool)
		return &user_usecases.DeleteUser{Users: users, Memberships: memberships, Picks: picks, DeletePool: deletePool}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.CreatePool, error) {
		var pools pool_out.PoolRepository
		var memberships pool_out.MembershipRepository
		var picks pool_out.PickRepository
		var seasons season_out.SeasonRepository
		var users user_out.UserRepository
		c.Resolve(&pools)
		c.Resolve(&memberships)
		c.Resolve(&picks)
		c.Resolve(&seasons)
		c.Resolve(&users)
		return &pool_usecases.CreatePool{Pools: pools, Memberships: memberships, Picks: picks, Seasons: seasons, Users: users}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.CreatePick, error) {
		var pools pool_out.PoolRepository
		var memberships pool_out.MembershipRepository
		var picks pool_out.PickRepository
		var seasons season_out.SeasonRepository
		c.Resolve(&pools)
		c.Resolve(&memberships)
		c.Resolve(&picks)
		c.Resolve(&seasons)
		return &pool_usecases.CreatePick{Pools: pools, Memberships: memberships, Picks: picks, Seasons: seasons}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.ComputeAdvanceStatus, error) {
		var memberships pool_out.MembershipRepository
		var picks pool_out.PickRepository
		var users user_out.UserRepository
		c.Resolve(&memberships)
		c.Resolve(&picks)
		c.Resolve(&users)
		return &pool_usecases.ComputeAdvanceStatus{Memberships: memberships, Picks: picks, Users: users}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.AdvancePoolWeek, error) {
		var pools pool_out.PoolRepository
		var memberships pool_out.MembershipRepository
		var picks pool_out.PickRepository
		var seasons season_out.SeasonRepository
		var users user_out.UserRepository
		var status *pool_usecases.ComputeAdvanceStatus
		c.Resolve(&pools)
		c.Resolve(&memberships)
		c.Resolve(&picks)
		c.Resolve(&seasons)
		c.Resolve(&users)
		c.Resolve(&status)
		return &pool_usecases.AdvancePoolWeek{Pools: pools, Memberships: memberships, Picks: picks, Seasons: seasons, Users: users, Status: status}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.GetAvailableContestants, error) {
		var pools pool_out.PoolRepository
		var memberships pool_out.MembershipRepository
		var picks pool_out.PickRepository
		var seasons season_out.SeasonRepository
		c.Resolve(&pools)
		c.Resolve(&memberships)
		c.Resolve(&picks)
		c.Resolve(&seasons)
		return &pool_usecases.GetAvailableContestants{Pools: pools, Memberships: memberships, Picks: picks, Seasons: seasons}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.GetContestantDetail, error) {
		var pools pool_out.PoolRepository
		var memberships pool_out.MembershipRepository
		var picks pool_out.PickRepository
		var seasons season_out.SeasonRepository
		c.Resolve(&pools)
		c.Resolve(&memberships)
		c.Resolve(&picks)
		c.Resolve(&seasons)
		return &pool_usecases.GetContestantDetail{Pools: pools, Memberships: memberships, Picks: picks, Seasons: seasons}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.GetPoolLeaderboard, error) {
		var memberships pool_out.MembershipRepository
		var users user_out.UserRepository
		c.Resolve(&memberships)
		c.Resolve(&users)
		return &pool_usecases.GetPoolLeaderboard{Memberships: memberships, Users: users}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.InviteUserToPool, error) {
		var pools pool_out.PoolRepository
		var memberships pool_out.MembershipRepository
		var users user_out.UserRepository
		c.Resolve(&pools)
		c.Resolve(&memberships)
		c.Resolve(&users)
		return &pool_usecases.InviteUserToPool{Pools: pools, Memberships: memberships, Users: users}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.MaybeMarkPoolCompetitive, error) {
		var pools pool_out.PoolRepository
		var memberships pool_out.MembershipRepository
		c.Resolve(&pools)
		c.Resolve(&memberships)
		return &pool_usecases.MaybeMarkPoolCompetitive{Pools: pools, Memberships: memberships}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.RespondToInvite, error) {
		var pools pool_out.PoolRepository
		var memberships pool_out.MembershipRepository
		var picks pool_out.PickRepository
		var seasons season_out.SeasonRepository
		var competitive *pool_usecases.MaybeMarkPoolCompetitive
		c.Resolve(&pools)
		c.Resolve(&memberships)
		c.Resolve(&picks)
		c.Resolve(&seasons)
		c.Resolve(&competitive)
		return &pool_usecases.RespondToInvite{Pools: pools, Memberships: memberships, Picks: picks, Seasons: seasons, Competitive: competitive}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.GetPendingInvitesForUser, error) {
		var memberships pool_out.MembershipRepository
		var pools pool_out.PoolRepository
		var seasons season_out.SeasonRepository
		var users user_out.UserRepository
		c.Resolve(&memberships)
		c.Resolve(&pools)
		c.Resolve(&seasons)
		c.Resolve(&users)
		return &pool_usecases.GetPendingInvitesForUser{Memberships: memberships, Pools: pools, Seasons: seasons, Users: users}, nil
	}); err != nil {
		panic(err)
	}

	if err := c.Singleton(func() (*pool_usecases.ListPoolMemberships, error) {
		var pools pool_out.PoolRepository
		var memberships pool_out.MembershipRepository
		var users user_out.UserRepository
		c.Resolve(&pools)
		c.Resolve(&memberships)
		c.Resolve(&users)
		return &pool_usecases.ListPoolMemberships{Pools: pools, Memberships: memberships, Users: users}, nil
	}); err != nil {
		panic(err)
	}

	return b
}
