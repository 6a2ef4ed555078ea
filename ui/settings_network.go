package ui

import (
	"vbagx/menu"
	"vbagx/settings"
)

type SettingsNetworkScreen struct{}

func NewSettingsNetworkScreen() *SettingsNetworkScreen {
	return &SettingsNetworkScreen{}
}

func (sc *SettingsNetworkScreen) Draw(s *menu.Session) menu.Screen {
	rows := []option{
		{
			name:  tr("smb_ip", "SMB Share IP"),
			value: func(p settings.Preferences) string { return p.SMBIP },
			click: keyboardEdit(func(p *settings.Preferences) *string { return &p.SMBIP }, settings.SMBIPMaxLen),
		},
		{
			name:  tr("smb_share", "SMB Share Name"),
			value: func(p settings.Preferences) string { return p.SMBShare },
			click: keyboardEdit(func(p *settings.Preferences) *string { return &p.SMBShare }, settings.SMBShareMaxLen),
		},
		{
			name:  tr("smb_user", "SMB Share Username"),
			value: func(p settings.Preferences) string { return p.SMBUser },
			click: keyboardEdit(func(p *settings.Preferences) *string { return &p.SMBUser }, settings.SMBUserMaxLen),
		},
		{
			name:  tr("smb_password", "SMB Share Password"),
			value: func(p settings.Preferences) string { return hidden(p.SMBPassword) },
			click: keyboardEdit(func(p *settings.Preferences) *string { return &p.SMBPassword }, settings.SMBPassMaxLen),
		},
	}

	page := newOptionsPage(s, "settings.network", tr("settings_network_title", "Settings - Network"), rows)
	return page.run(s, menu.ScreenSettings, true)
}
