package application

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container"
	"github.com/epoint/springlab/logging/logger"
)

// FailureAnalysis describes a startup failure and how to fix it
type FailureAnalysis struct {
	Description string `json:"description"`
	Action      string `json:"action"`
	Cause       error  `json:"-"`
}

// String renders the analysis as the startup failure report
func (f *FailureAnalysis) String() string {
	var b strings.Builder
	b.WriteString("\n***************************\n")
	b.WriteString("APPLICATION FAILED TO START\n")
	b.WriteString("***************************\n\n")
	b.WriteString("Description:\n\n")
	b.WriteString(f.Description)
	b.WriteString("\n\nAction:\n\n")
	b.WriteString(f.Action)
	b.WriteString("\n")
	return b.String()
}

// Analyze maps err to a failure analysis. Unknown errors get a generic one.
func Analyze(err error) *FailureAnalysis {
	if err == nil {
		return nil
	}

	switch {
	case isAddressInUse(err):
		return &FailureAnalysis{
			Description: fmt.Sprintf("The embedded server failed to start. %s is already in use.", listenAddress(err)),
			Action:      "Identify and stop the process that is listening on that address or configure this application to listen on another port with --server.port.",
			Cause:       err,
		}
	case errors.Is(err, config.ErrInvalidConfig):
		return &FailureAnalysis{
			Description: fmt.Sprintf("The configuration could not be bound: %v", err),
			Action:      "Correct the reported properties in the application file, the SPRINGLAB_* environment or the --name=value arguments.",
			Cause:       err,
		}
	case errors.Is(err, container.ErrMissingDependency):
		return &FailureAnalysis{
			Description: fmt.Sprintf("A component requires a component that is not registered: %v", err),
			Action:      "Register the missing component in the root configuration or remove the dependency.",
			Cause:       err,
		}
	case errors.Is(err, container.ErrCyclicDependency):
		return &FailureAnalysis{
			Description: fmt.Sprintf("The dependencies of some of the components form a cycle: %v", err),
			Action:      "Break the cycle, for example by turning one of the dependencies into a weak dependency.",
			Cause:       err,
		}
	case errors.Is(err, container.ErrInitTimeout):
		return &FailureAnalysis{
			Description: fmt.Sprintf("Component initialization did not complete in time: %v", err),
			Action:      "Check the component for blocking calls, or raise container.init_timeout or container.phase_timeout.",
			Cause:       err,
		}
	case errors.Is(err, container.ErrAlreadyRegistered):
		return &FailureAnalysis{
			Description: fmt.Sprintf("A component name is used more than once: %v", err),
			Action:      "Give every component a unique name.",
			Cause:       err,
		}
	default:
		return &FailureAnalysis{
			Description: fmt.Sprintf("Application startup failed: %v", err),
			Action:      "Review the error above and the preceding log output.",
			Cause:       err,
		}
	}
}

func isAddressInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE) || strings.Contains(err.Error(), "address already in use")
}

func listenAddress(err error) string {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Addr != nil {
		return "Address " + opErr.Addr.String()
	}
	return "The configured address"
}

// ReportFailure logs the analysis of a startup failure
func ReportFailure(ctx context.Context, log *logger.Logger, analysis *FailureAnalysis) {
	if analysis == nil {
		return
	}
	if log == nil {
		log = logger.StdLogger()
	}
	log.Error(ctx, analysis.String())
}
