package database

import (
	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// Every repository must satisfy its gateway interface, including the full
// insert/patch/delete surface.
var (
	_ entity.SectionRepository    = (*SectionRepository)(nil)
	_ entity.LegalPageRepository  = (*LegalPageRepository)(nil)
	_ entity.TeamMemberRepository = (*TeamMemberRepository)(nil)
	_ entity.LeadRepository       = (*LeadRepository)(nil)
	_ entity.SessionRepository    = (*SessionRepository)(nil)
	_ entity.AdminUserRepository  = (*SessionRepository)(nil)
)
