package http

import "github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"

type reconcileReq struct {
	Keys [][]string `json:"keys" binding:"required"`
}

func (r reconcileReq) toSet() (reconcile.Set, error) {
	set := make(reconcile.Set, 0, len(r.Keys))
	for _, k := range r.Keys {
		set = append(set, reconcile.QueryKey(k))
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

type reconcileResp struct {
	Swept int `json:"swept"`
}

type statsResp struct {
	ActiveRegistrations int `json:"active_registrations"`
}
