package bilicopy

// containerID marks an installed button stack; its presence means the page
// is already initialized.
const containerID = "copy-buttons-container"

// bindingName is the window function buttons call with their action key.
const bindingName = "__bilicopyAction"

// Toast display timing, in milliseconds.
const (
	toastVisibleMs = 2000
	toastFadeMs    = 500
)

// toastJS renders a fixed bottom-left message that fades out and removes
// itself.
const toastJS = `(msg, visibleMs, fadeMs) => {
	const toast = document.createElement('div');
	toast.innerText = msg;
	Object.assign(toast.style, {
		position: 'fixed',
		bottom: '20px',
		left: '20px',
		backgroundColor: '#323232',
		color: '#fff',
		padding: '10px 15px',
		borderRadius: '5px',
		fontSize: '14px',
		boxShadow: '0px 2px 8px rgba(0, 0, 0, 0.2)',
		zIndex: '9999',
		opacity: '1',
		transition: 'opacity ' + (fadeMs / 1000) + 's ease',
	});
	document.body.appendChild(toast);
	setTimeout(() => {
		toast.style.opacity = '0';
		setTimeout(() => toast.remove(), fadeMs);
	}, visibleMs);
}`

// installJS builds the vertical button stack. Returns false if a stack with
// the same id is already on the page.
const installJS = `(containerID, bindingName, buttons) => {
	if (document.getElementById(containerID)) return false;
	const container = document.createElement('div');
	container.id = containerID;
	Object.assign(container.style, {
		position: 'fixed',
		top: '80px',
		left: '10px',
		zIndex: '9999',
		display: 'flex',
		flexDirection: 'column',
		gap: '10px',
	});
	for (const b of buttons) {
		const button = document.createElement('button');
		button.innerText = b.label;
		button.dataset.action = b.key;
		Object.assign(button.style, {
			padding: '5px 15px',
			backgroundColor: '#00a1d6',
			color: '#fff',
			border: 'none',
			borderRadius: '5px',
			fontSize: '14px',
			cursor: 'pointer',
		});
		button.addEventListener('click', () => {
			window[bindingName](b.key).catch((e) => console.error(e));
		});
		container.appendChild(button);
	}
	document.body.appendChild(container);
	return true;
}`
