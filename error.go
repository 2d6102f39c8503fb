package hederalegacy

import (
	"fmt"
)

var (
	ErrMissingCredentials  = fmt.Errorf("missing credentials")
	ErrProfileNotFound     = fmt.Errorf("profile not found")
	ErrInvalidNetwork      = fmt.Errorf("invalid network")
	ErrInvalidArgument     = fmt.Errorf("invalid argument")
	ErrInvalidArtifact     = fmt.Errorf("invalid contract artifact")
	ErrContractNotDeployed = fmt.Errorf("contract not deployed")
	ErrTokenNotSet         = fmt.Errorf("token id not set")
	ErrResultOutOfRange    = fmt.Errorf("result index out of range")
	ErrDeploymentNotFound  = fmt.Errorf("deployment not found")
	ErrMissingReceipt      = fmt.Errorf("transaction receipt missing field")
	ErrRpcFailed           = fmt.Errorf("rpc failed")
)

var AllErrors = []error{
	ErrMissingCredentials,
	ErrProfileNotFound,
	ErrInvalidNetwork,
	ErrInvalidArgument,
	ErrInvalidArtifact,
	ErrContractNotDeployed,
	ErrTokenNotSet,
	ErrResultOutOfRange,
	ErrDeploymentNotFound,
	ErrMissingReceipt,
	ErrRpcFailed,
}
