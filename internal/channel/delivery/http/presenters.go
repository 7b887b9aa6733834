package http

import "github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"

type channelItem struct {
	Name     string `json:"name"`
	Family   string `json:"family"`
	Resource string `json:"resource"`
	Owner    string `json:"owner"`
}

type listResp struct {
	UserID   string        `json:"user_id"`
	Role     string        `json:"role"`
	Channels []channelItem `json:"channels"`
}

func (h *Handler) newListResp(userID, role string, names []channel.Name) listResp {
	items := make([]channelItem, 0, len(names))
	for _, n := range names {
		d, err := h.scheme.Parse(n)
		if err != nil {
			continue
		}
		items = append(items, channelItem{
			Name:     n.String(),
			Family:   string(d.Family),
			Resource: string(d.Resource),
			Owner:    d.Owner,
		})
	}
	return listResp{UserID: userID, Role: role, Channels: items}
}
