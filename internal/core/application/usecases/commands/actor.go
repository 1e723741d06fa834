package commands

import (
	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/pkg/errs"
)

func checkActor(actor company.Actor) error {
	if actor.Validate() != nil {
		return errs.NewUnauthorizedError("caller is not authenticated")
	}
	return nil
}
