package memory_test

import (
	"testing"

	"github.com/aretw0/tessera/pkg/adapters/memory"
	"github.com/aretw0/tessera/pkg/ports"
)

func TestRegistry_Contract(t *testing.T) {
	ports.RunSessionRegistryContract(t, memory.NewRegistry())
}
