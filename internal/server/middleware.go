package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var schemaCache sync.Map // key -> *jsonschema.Schema

func schemaCacheKey(toolName string, schema []byte) string {
	sum := sha256.Sum256(schema)
	return toolName + ":" + hex.EncodeToString(sum[:])
}

func compileSchema(toolName string, schema []byte) (*jsonschema.Schema, error) {
	key := schemaCacheKey(toolName, schema)
	if v, ok := schemaCache.Load(key); ok {
		return v.(*jsonschema.Schema), nil
	}
	s, err := jsonschema.CompileString(toolName+".json", string(schema))
	if err != nil {
		return nil, err
	}
	schemaCache.Store(key, s)
	return s, nil
}

func firstLeafValidationError(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		return err
	}
	for _, c := range err.Causes {
		if leaf := firstLeafValidationError(c); leaf != nil {
			return leaf
		}
	}
	return err
}

// validateArgs checks tool arguments against the tool's declared input
// schema before the handler runs.
func validateArgs(toolName string, schema []byte, args any) error {
	if len(schema) == 0 {
		return nil
	}
	s, err := compileSchema(toolName, schema)
	if err != nil {
		return fmt.Errorf("invalid input schema for %s: %w", toolName, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := s.Validate(args); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := firstLeafValidationError(ve)
			loc := leaf.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			return fmt.Errorf("invalid arguments for %s at %s: %s", toolName, loc, leaf.Message)
		}
		return fmt.Errorf("invalid arguments for %s: %v", toolName, err)
	}
	return nil
}

// instrument wraps a handler with argument validation and structured
// logging. Each invocation gets a fresh id so upstream retries and
// concurrent calls stay distinguishable in the log.
func (s *Server) instrument(t mcp.Tool, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	schema, _ := json.Marshal(t.InputSchema)
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := uuid.NewString()
		log := s.log.With("tool", t.Name, "invocation", id)

		if err := validateArgs(t.Name, schema, req.GetArguments()); err != nil {
			log.Warn("rejected", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		start := time.Now()
		res, err := next(ctx, req)
		dur := time.Since(start).Round(time.Millisecond)
		switch {
		case err != nil:
			log.Error("failed", "error", err, "duration", dur)
		case res != nil && res.IsError:
			log.Warn("tool error", "duration", dur)
		default:
			log.Info("ok", "duration", dur)
		}
		return res, err
	}
}
