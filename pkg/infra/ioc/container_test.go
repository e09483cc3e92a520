//go:build integration

// Package ioc_test contains integration tests for the IoC container. These
// require a running MongoDB instance and only run in environments with
// database access (e.g. local dev or an integration CI job).
package ioc_test

import (
	"os"
	"testing"

	"github.com/golobby/container/v3"
	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
	ioc "github.com/survivor-pool/survivor-pool/pkg/infra/ioc"
)

func getContainer(t *testing.T) container.Container {
	os.Setenv("DEV_ENV", "test")
	os.Setenv("MONGO_URL", "mongodb://127.0.0.1:37019/survivor_pool_test")
	os.Setenv("DATABASE_NAME", "survivor_pool_test")
	os.Setenv("JWT_SECRET_KEY", "test-secret")

	return ioc.NewContainerBuilder().WithEnvFile().With(ioc.InjectMongoDB).WithUseCases().Build()
}

func TestResolveUserRepository(t *testing.T) {
	c := getContainer(t)

	var users out.UserRepository
	if err := c.Resolve(&users); err != nil {
		t.Fatalf("failed to resolve UserRepository: %v", err)
	}
}
